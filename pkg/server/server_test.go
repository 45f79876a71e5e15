package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loyalty-tools/receipt-points/pkg/models/api"
	"github.com/loyalty-tools/receipt-points/pkg/services/validation"
	"github.com/loyalty-tools/receipt-points/pkg/store/memory"
)

func newTestServer(t *testing.T, rateLimit RateLimit) *httptest.Server {
	t.Helper()

	router := ConfigureRouter(Config{
		RateLimit: rateLimit,
		Dependencies: Dependencies{
			Validator: validation.NewValidator(),
			Records:   memory.NewStore(),
			Logger:    zerolog.Nop(),
		},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postReceipt(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+"/receipts/process", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestProcessAndLookup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedPoints int64
	}{
		{
			name: "target receipt",
			body: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"items": [
					{"shortDescription": "Mountain Dew 12PK", "price": "6.49"},
					{"shortDescription": "Emils Cheese Pizza", "price": "12.25"},
					{"shortDescription": "Knorr Creamy Chicken", "price": "1.26"},
					{"shortDescription": "Doritos Nacho Cheese", "price": "3.35"},
					{"shortDescription": "   Klarbrunn 12-PK 12 FL OZ  ", "price": "12.00"}
				],
				"total": "35.35"
			}`,
			expectedPoints: 28,
		},
		{
			name: "walmart receipt",
			body: `{
				"retailer": "Walmart",
				"purchaseDate": "2022-03-15",
				"purchaseTime": "15:30",
				"items": [
					{"shortDescription": "Large Bath Towels", "price": "100.00"}
				],
				"total": "100.00"
			}`,
			expectedPoints: 98,
		},
		{
			name: "afternoon mart receipt",
			body: `{
				"retailer": "Afternoon Mart",
				"purchaseDate": "2022-04-01",
				"purchaseTime": "14:15",
				"items": [
					{"shortDescription": "Afternoon Cookies", "price": "25.00"}
				],
				"total": "25.00"
			}`,
			expectedPoints: 104,
		},
	}

	server := newTestServer(t, RateLimit{Enabled: false})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postReceipt(t, server, tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var processed api.ProcessReceiptResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&processed))
			_, err := uuid.Parse(processed.ID)
			require.NoError(t, err)

			lookup, err := http.Get(server.URL + "/receipts/" + processed.ID + "/points")
			require.NoError(t, err)
			defer lookup.Body.Close()
			require.Equal(t, http.StatusOK, lookup.StatusCode)

			var points api.PointsResponse
			require.NoError(t, json.NewDecoder(lookup.Body).Decode(&points))
			assert.Equal(t, tt.expectedPoints, points.Points)
		})
	}
}

func TestProcessReceipt_ValidationFailures(t *testing.T) {
	server := newTestServer(t, RateLimit{Enabled: false})

	tests := []struct {
		name string
		body string
	}{
		{
			name: "empty items",
			body: `{
				"retailer": "Target",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"items": [],
				"total": "35.35"
			}`,
		},
		{
			name: "markup in retailer",
			body: `{
				"retailer": "<script>alert(1)</script>",
				"purchaseDate": "2022-01-01",
				"purchaseTime": "13:01",
				"items": [{"shortDescription": "Gum", "price": "0.99"}],
				"total": "0.99"
			}`,
		},
		{
			name: "malformed body",
			body: `{"retailer":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postReceipt(t, server, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body api.Error
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGetPoints_UnknownID(t *testing.T) {
	server := newTestServer(t, RateLimit{Enabled: false})

	resp, err := http.Get(server.URL + "/receipts/" + uuid.NewString() + "/points")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body api.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "receipt not found", body.Error)
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t, RateLimit{Enabled: false})

	resp, err := http.Get(server.URL + "/receipts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body api.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "resource not found", body.Error)
}

func TestSecurityHeaders(t *testing.T) {
	server := newTestServer(t, RateLimit{Enabled: false})

	resp, err := http.Get(server.URL + "/receipts/" + uuid.NewString() + "/points")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestRateLimit(t *testing.T) {
	server := newTestServer(t, RateLimit{Enabled: true, RequestsPerSecond: 0.001, Burst: 2})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/receipts/" + uuid.NewString() + "/points")
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		_ = resp.Body.Close()
	}

	assert.Equal(t, http.StatusNotFound, statuses[0])
	assert.Equal(t, http.StatusNotFound, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}
