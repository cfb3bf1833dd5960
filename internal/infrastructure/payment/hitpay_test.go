package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-sg/bookspace-api/internal/config"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.PaymentConfig{
		APIURL:  baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "174.40", FormatCents(17440))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "25.00", FormatCents(2500))
}

func TestCreatePaymentRequest(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment-requests", r.URL.Path)
		gotAuth = r.Header.Get("X-BUSINESS-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(PaymentRequest{
			ID:     "req_abc",
			Status: "pending",
			URL:    "https://securecheckout.example/req_abc",
		})
	}))
	defer srv.Close()

	pr, err := testClient(srv.URL).CreatePaymentRequest(context.Background(), &CreateRequest{
		Amount:          "174.40",
		Currency:        "SGD",
		Email:           "jane@example.com",
		ReferenceNumber: "BK-A1B2C3D4",
		PaymentMethods:  []string{"paynow_online", "card"},
	})
	require.NoError(t, err)

	assert.Equal(t, "req_abc", pr.ID)
	assert.Equal(t, "https://securecheckout.example/req_abc", pr.URL)
	assert.Equal(t, "test-key", gotAuth)

	// Optional fields absent from the input must not appear as nulls
	_, hasName := gotBody["name"]
	assert.False(t, hasName)
	_, hasPhone := gotBody["phone"]
	assert.False(t, hasPhone)
	assert.Equal(t, "174.40", gotBody["amount"])
}

func TestCreatePaymentRequest_RejectedByProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The amount must be at least 0.30"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreatePaymentRequest(context.Background(), &CreateRequest{
		Amount:   "0.10",
		Currency: "SGD",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestGetPaymentRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment-requests/req_abc", r.URL.Path)
		json.NewEncoder(w).Encode(PaymentRequest{
			ID:     "req_abc",
			Name:   "Jane Tan",
			Email:  "jane.tan@example.com",
			Status: "completed",
		})
	}))
	defer srv.Close()

	pr, err := testClient(srv.URL).GetPaymentRequest(context.Background(), "req_abc")
	require.NoError(t, err)
	assert.Equal(t, "Jane Tan", pr.Name)
}

func TestGetPaymentRequest_FailuresAreUpstreamLookupErrors(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).GetPaymentRequest(context.Background(), "req_missing")
		require.ErrorIs(t, err, apperror.ErrUpstreamLookup)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := testClient(srv.URL).GetPaymentRequest(context.Background(), "req_abc")
		require.ErrorIs(t, err, apperror.ErrUpstreamLookup)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).GetPaymentRequest(context.Background(), "req_abc")
		require.ErrorIs(t, err, apperror.ErrUpstreamLookup)
	})
}
