package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitbill/receipt-extract/internal/extract"
	"github.com/splitbill/receipt-extract/internal/pipeline"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(pipeline.NewProcessor(nil, nil, nil, nil), nil)
	svc.Register(r)
	return r
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	newTestRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateExtraction_WithLines(t *testing.T) {
	lines := []extract.RawTextLine{
		{Text: "Cafe Luna", Y: 0},
		{Text: "2 Latte 9.00", Y: 1},
		{Text: "Total 9.74", Y: 2},
	}
	linesJSON, err := json.Marshal(lines)
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("lines", string(linesJSON)))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/extractions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result extract.Extraction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Latte", result.Items[0].Name)
	assert.Equal(t, 2, result.Items[0].Quantity)
	require.NotNil(t, result.ReceiptTotal)
	assert.InDelta(t, 9.74, *result.ReceiptTotal, 1e-9)
}

func TestCreateExtraction_BadLinesJSON(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("lines", "not json"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/extractions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateExtraction_NotMultipart(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/extractions", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
