package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

func testCard() models.CardDetails {
	return models.CardDetails{
		Number:   "4242-4242-4242-4242",
		ExpMonth: 12,
		ExpYear:  2030,
		CVC:      "123",
		Complete: true,
	}
}

func TestConfirmIntentSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/confirm", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cs_123", body["clientSecret"])
		assert.Equal(t, "Card", body["paymentMethodType"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "sk_test", time.Second)
	assert.NoError(t, c.ConfirmIntent(context.Background(), "cs_123", testCard()))
}

func TestConfirmIntentDeclineIsVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card has insufficient funds."}}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "sk_test", time.Second)
	err := c.ConfirmIntent(context.Background(), "cs_123", testCard())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Your card has insufficient funds.", gwErr.Message)
}

func TestConfirmIntentNonSucceededStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","status":"requires_action"}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "", time.Second)
	err := c.ConfirmIntent(context.Background(), "cs_123", testCard())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "requires_action")
}
