package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/pkg/sendgrid"
)

type notificationServiceMocks struct {
	repo  *repository.MockNotificationRepository
	users *repository.MockUserRepository
	email *sendgrid.MockEmailSender
}

func setupNotificationServiceTest() (notificationServiceMocks, service.NotificationService) {
	mocks := notificationServiceMocks{
		repo:  repository.NewMockNotificationRepository(),
		users: repository.NewMockUserRepository(),
		email: sendgrid.NewMockEmailSender(),
	}

	notificationService := service.NewNotificationService(mocks.repo, mocks.users, mocks.email)

	return mocks, notificationService
}

func TestNotifyOrderStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	user := &models.User{ID: userID, Email: "customer@example.com"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == userID &&
				n.Type == models.NotificationTypeOrderStatus &&
				n.Status == models.NotificationStatusPending
		})).Return(nil).Once()
		mocks.users.On("GetUserByID", ctx, userID).Return(user, nil).Once()
		mocks.email.On("Send", ctx, user.Email, "Your order has been accepted", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, orderID.String())
		}), "").Return(nil).Once()
		mocks.repo.On("UpdateStatus", ctx, mock.Anything, models.NotificationStatusSent).Return(nil).Once()

		// Act
		err := notificationService.NotifyOrderStatus(ctx, userID, orderID, models.OrderStatusAccepted)

		// Assert
		require.NoError(t, err)
		mocks.repo.AssertExpectations(t)
		mocks.email.AssertExpectations(t)
	})

	t.Run("Email failure marks notification failed", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mocks.users.On("GetUserByID", ctx, userID).Return(user, nil).Once()
		mocks.email.On("Send", ctx, user.Email, mock.Anything, mock.Anything, "").
			Return(errors.New("sendgrid unavailable")).Once()
		mocks.repo.On("UpdateStatus", ctx, mock.Anything, models.NotificationStatusFailed).Return(nil).Once()

		// Act
		err := notificationService.NotifyOrderStatus(ctx, userID, orderID, models.OrderStatusReady)

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeThirdPartyError, appErr.Code)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Unknown recipient marks notification failed", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mocks.users.On("GetUserByID", ctx, userID).Return(nil, errors.New("no rows")).Once()
		mocks.repo.On("UpdateStatus", ctx, mock.Anything, models.NotificationStatusFailed).Return(nil).Once()

		// Act
		err := notificationService.NotifyOrderStatus(ctx, userID, orderID, models.OrderStatusCompleted)

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		mocks.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotifyApplicationStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	user := &models.User{ID: userID, Email: "applicant@example.com"}

	t.Run("Approved with reviewer notes", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Type == models.NotificationTypeApplicationStatus
		})).Return(nil).Once()
		mocks.users.On("GetUserByID", ctx, userID).Return(user, nil).Once()
		mocks.email.On("Send", ctx, user.Email, "Your vendor application has been approved", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "welcome aboard")
		}), "").Return(nil).Once()
		mocks.repo.On("UpdateStatus", ctx, mock.Anything, models.NotificationStatusSent).Return(nil).Once()

		// Act
		err := notificationService.NotifyApplicationStatus(ctx, userID, models.ApplicationStatusApproved, "welcome aboard")

		// Assert
		require.NoError(t, err)
		mocks.email.AssertExpectations(t)
	})

	t.Run("Documents requested", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mocks.users.On("GetUserByID", ctx, userID).Return(user, nil).Once()
		mocks.email.On("Send", ctx, user.Email, "Additional documents requested for your vendor application", mock.Anything, "").
			Return(nil).Once()
		mocks.repo.On("UpdateStatus", ctx, mock.Anything, models.NotificationStatusSent).Return(nil).Once()

		// Act
		err := notificationService.NotifyApplicationStatus(ctx, userID, models.ApplicationStatusDocumentsRequested, "")

		// Assert
		require.NoError(t, err)
		mocks.email.AssertExpectations(t)
	})
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		expected := []*models.Notification{{ID: uuid.New(), UserID: userID}}
		mocks.repo.On("ListByUser", ctx, userID, 50).Return(expected, nil).Once()

		// Act
		notifications, err := notificationService.ListNotifications(ctx, userID, 50)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, notifications)
	})

	t.Run("Out-of-range limit falls back to default", func(t *testing.T) {
		// Arrange
		mocks, notificationService := setupNotificationServiceTest()

		mocks.repo.On("ListByUser", ctx, userID, 20).Return([]*models.Notification{}, nil).Once()

		// Act
		notifications, err := notificationService.ListNotifications(ctx, userID, 0)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, notifications)
		mocks.repo.AssertExpectations(t)
	})
}
