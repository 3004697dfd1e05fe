package sendgrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// newTestSender points the client at the mock server instead of the
// real SendGrid API.
func newTestSender(baseURL string) *emailSender {
	client := sendgrid.NewSendClient("SG.test-key")
	client.Request.BaseURL = baseURL

	return &emailSender{
		client:    client,
		fromEmail: "from@example.com",
		fromName:  "Tazecep Test",
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - plain and HTML content", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer SG.test-key", r.Header.Get("Authorization"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))

			w.WriteHeader(http.StatusAccepted)
		}))
		t.Cleanup(server.Close)

		sender := newTestSender(server.URL)

		// Act
		err := sender.Send(ctx, "recipient@example.com", "Order update", "Your order is ready.", "<p>Your order is ready.</p>")

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		require.Len(t, payload.Personalizations[0].To, 1)
		assert.Equal(t, "recipient@example.com", payload.Personalizations[0].To[0]["email"])
		assert.Equal(t, "Order update", payload.Personalizations[0].Subject)
		assert.Equal(t, "from@example.com", payload.From["email"])
		assert.Equal(t, "Tazecep Test", payload.From["name"])
		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "Your order is ready.", payload.Content[0].Value)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Success - plain content only", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))

			w.WriteHeader(http.StatusAccepted)
		}))
		t.Cleanup(server.Close)

		sender := newTestSender(server.URL)

		// Act
		err := sender.Send(ctx, "recipient@example.com", "Order update", "Plain only.", "")

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Content, 1)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
	})

	t.Run("Failure - API error status", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid email"}]}`))
		}))
		t.Cleanup(server.Close)

		sender := newTestSender(server.URL)

		// Act
		err := sender.Send(ctx, "bad@example.com", "Order update", "Content", "")

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code: 400")
	})
}
