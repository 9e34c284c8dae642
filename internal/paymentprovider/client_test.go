package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("успешное создание намерения", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
			assert.Equal(t, "idem-key", r.Header.Get("Idempotency-Key"))

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "500", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","status":"requires_payment_method"}`))
		}))
		defer server.Close()

		client := NewClient("sk_test_key", server.URL)

		resp, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:         500,
			Currency:       "USD",
			IdempotencyKey: "idem-key",
		})
		assert.NoError(t, err)
		assert.Equal(t, "pi_123", resp.ID)
		assert.Equal(t, "pi_123_secret", resp.ClientSecret)
	})

	t.Run("ошибка провайдера с сообщением", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
		}))
		defer server.Close()

		client := NewClient("sk_test_key", server.URL)

		resp, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:   500,
			Currency: "usd",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Your card was declined.")
		assert.Nil(t, resp)
	})

	t.Run("неожиданный статус без тела", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient("sk_test_key", server.URL)

		resp, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:   500,
			Currency: "usd",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
		assert.Nil(t, resp)
	})
}
