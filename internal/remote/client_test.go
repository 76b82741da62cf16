package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitbill/receipt-extract/internal/common"
	"github.com/splitbill/receipt-extract/internal/extract"
)

func newTestClient(url string) *Client {
	return NewClient(Config{Endpoint: url, Timeout: 5 * time.Second}, nil)
}

func TestClient_Extract_Success(t *testing.T) {
	var gotFilename, gotContentType, gotHint, gotTimestamp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))

		file, header, err := r.FormFile("receipt")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotHint = r.FormValue("location_hint")
		gotTimestamp = r.FormValue("location_timestamp")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"merchantName": "Cafe Luna",
				"total": 14.31,
				"items": [
					{"name": "Latte", "quantity": 2, "unitPrice": 4.5, "totalPrice": 9.0},
					{"name": "Croissant", "quantity": 1, "unitPrice": 4.25, "totalPrice": 0},
					{"name": "Water", "quantity": 1, "unitPrice": 0, "totalPrice": 0}
				]
			}
		}`))
	}))
	defer srv.Close()

	acc := 12.5
	hint := &extract.LocationHint{
		Latitude:       37.774929,
		Longitude:      -122.419418,
		AccuracyMeters: &acc,
		CapturedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	res, err := newTestClient(srv.URL).Extract(context.Background(), []byte("jpeg-bytes"), hint)
	require.NoError(t, err)

	assert.Equal(t, "receipt.jpg", gotFilename)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, "37.774929,-122.419418", gotHint)
	assert.Equal(t, "2024-05-01T12:00:00Z", gotTimestamp)

	assert.Equal(t, "Cafe Luna", res.MerchantName)
	require.NotNil(t, res.Total)
	assert.InDelta(t, 14.31, *res.Total, 1e-9)

	require.Len(t, res.Items, 3)
	// totalPrice wins when positive
	require.NotNil(t, res.Items[0].Price)
	assert.InDelta(t, 9.0, *res.Items[0].Price, 1e-9)
	// unitPrice * quantity when totalPrice is unusable
	require.NotNil(t, res.Items[1].Price)
	assert.InDelta(t, 4.25, *res.Items[1].Price, 1e-9)
	// neither usable: no price
	assert.Nil(t, res.Items[2].Price)
}

func TestClient_Extract_NoLocationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Empty(t, r.FormValue("location_hint"))
		assert.Empty(t, r.FormValue("location_latitude"))
		_, _ = w.Write([]byte(`{"success": true, "data": {"items": []}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Extract(context.Background(), []byte("jpeg-bytes"), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestClient_Extract_FailureClasses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: common.ErrBadStatus,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>gateway error</html>"))
			},
			wantErr: common.ErrMalformedResponse,
		},
		{
			name: "schema violation",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success": "yes"}`))
			},
			wantErr: common.ErrMalformedResponse,
		},
		{
			name: "unsuccessful response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success": false, "error": "unreadable receipt"}`))
			},
			wantErr: common.ErrMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL).Extract(context.Background(), []byte("jpeg-bytes"), nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Extract_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Extract(context.Background(), []byte("jpeg-bytes"), nil)
	assert.ErrorIs(t, err, common.ErrNetworkFailure)
}
