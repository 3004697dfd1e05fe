package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

func TestCartRepository(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	t.Run("Create Cart", func(t *testing.T) {
		userID := uuid.New()
		cartID := uuid.New()
		now := time.Now()
		cart := &models.Cart{
			ID:     cartID,
			UserID: userID,
			Items:  []models.CartLine{},
			Total:  0,
		}

		expectedItemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		expectedSQL := regexp.QuoteMeta(`
			INSERT INTO carts (id, user_id, items, total, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(cart.ID, cart.UserID, expectedItemsJSON, cart.Total).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(cartID, now, now))

			// Act
			err := repo.CreateCart(ctx, cart)

			// Assert
			require.NoError(t, err, "CreateCart should not return an error on success")
			assert.Equal(t, cartID, cart.ID)
			assert.WithinDuration(t, now, cart.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Database Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("database insertion error")
			mock.ExpectQuery(expectedSQL).
				WithArgs(cart.ID, cart.UserID, expectedItemsJSON, cart.Total).
				WillReturnError(dbError)

			// Act
			err := repo.CreateCart(ctx, cart)

			// Assert
			require.Error(t, err, "CreateCart should return an error on DB failure")
			assert.Equal(t, dbError, err)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})
	})

	t.Run("GetCartByUserID", func(t *testing.T) {
		userID := uuid.New()
		cartID := uuid.New()
		productID := uuid.New()
		now := time.Now()
		expectedItems := []models.CartLine{
			{ProductID: productID, Quantity: 2, UnitPrice: 10.50},
		}
		itemsJSON, err := json.Marshal(expectedItems)
		require.NoError(t, err)

		expectedSQL := regexp.QuoteMeta(`
			SELECT id, user_id, items, total, created_at, updated_at
			FROM carts
			WHERE user_id = $1
		`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "items", "total", "created_at", "updated_at"}).
					AddRow(cartID, userID, itemsJSON, 21.00, now, now))

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, cart)
			assert.Equal(t, cartID, cart.ID)
			assert.Equal(t, userID, cart.UserID)
			assert.Equal(t, expectedItems, cart.Items)
			assert.InDelta(t, 21.00, cart.Total, 0.001)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnError(sql.ErrNoRows)

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows, "Missing cart should surface sql.ErrNoRows")
			assert.Nil(t, cart)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Corrupt Items Payload", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "items", "total", "created_at", "updated_at"}).
					AddRow(cartID, userID, []byte(`{not json`), 0.0, now, now))

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			require.Error(t, err)
			assert.ErrorContains(t, err, "failed to unmarshal cart items")
			assert.Nil(t, cart)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})
	})

	t.Run("UpdateCart", func(t *testing.T) {
		cartID := uuid.New()
		cart := &models.Cart{
			ID:     cartID,
			UserID: uuid.New(),
			Items: []models.CartLine{
				{ProductID: uuid.New(), Quantity: 3, UnitPrice: 4.25},
			},
		}
		cart.Recalculate()

		itemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		expectedSQL := regexp.QuoteMeta(`
			UPDATE carts
			SET items = $1, total = $2, updated_at = $3
			WHERE id = $4
		`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).
				WithArgs(itemsJSON, cart.Total, sqlmock.AnyArg(), cart.ID).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.UpdateCart(ctx, cart)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Cart Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).
				WithArgs(itemsJSON, cart.Total, sqlmock.AnyArg(), cart.ID).
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.UpdateCart(ctx, cart)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows, "Zero affected rows should surface sql.ErrNoRows")
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Database Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("database update error")
			mock.ExpectExec(expectedSQL).
				WithArgs(itemsJSON, cart.Total, sqlmock.AnyArg(), cart.ID).
				WillReturnError(dbError)

			// Act
			err := repo.UpdateCart(ctx, cart)

			// Assert
			require.Error(t, err)
			assert.ErrorContains(t, err, "failed to update the cart")
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})
	})
}
