package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/splitbill/receipt-extract/internal/common"
	"github.com/splitbill/receipt-extract/internal/extract"
)

// Config for the remote extraction service client.
type Config struct {
	Endpoint string        // full URL of the extraction endpoint
	Timeout  time.Duration // http client timeout; default 30s
}

// Client posts the first captured page to the remote receipt-processing
// service. One attempt per extraction call; the caller never retries.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// response is the wire shape of the remote service reply.
type response struct {
	Success bool     `json:"success"`
	Data    *payload `json:"data"`
	Error   string   `json:"error"`
}

type payload struct {
	MerchantName string     `json:"merchantName"`
	Total        *float64   `json:"total"`
	Items        []wireItem `json:"items"`
	Subtotal     *float64   `json:"subtotal"`
	Tax          *float64   `json:"tax"`
	Gratuity     *float64   `json:"gratuity"`
	LocationName string     `json:"locationName"`
}

type wireItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Extract uploads the first page image and decodes the service response.
// Failure classes map onto the engine error taxonomy: transport/timeout ->
// ErrNetworkFailure, non-2xx -> ErrBadStatus, undecodable or success=false ->
// ErrMalformedResponse.
func (c *Client) Extract(ctx context.Context, firstPage []byte, hint *extract.LocationHint) (extract.RemoteResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	body, contentType, err := buildMultipartBody(firstPage, hint)
	if err != nil {
		return extract.RemoteResult{}, common.NewAppError("REMOTE_ENCODE", err.Error(), common.ErrNetworkFailure)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, body)
	if err != nil {
		return extract.RemoteResult{}, common.NewAppError("REMOTE_REQUEST", err.Error(), common.ErrNetworkFailure)
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Info("remote.extract.start",
		"req_id", rid,
		"url", c.cfg.Endpoint,
		"image_bytes", len(firstPage),
		"has_location", hint != nil,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("remote.extract.send_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return extract.RemoteResult{}, common.NewAppError("REMOTE_TRANSPORT", err.Error(), common.ErrNetworkFailure)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("remote.extract.body_close_error", "req_id", rid, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("remote.extract.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return extract.RemoteResult{}, common.NewAppError("REMOTE_STATUS",
			fmt.Sprintf("non-2xx status: %d", resp.StatusCode), common.ErrBadStatus)
	}

	if err := ValidateJSONAgainstSchema(BuildResponseJSONSchema(), raw); err != nil {
		c.logger.Error("remote.extract.schema_validation_failed", "req_id", rid, "error", err)
		return extract.RemoteResult{}, common.NewAppError("REMOTE_SCHEMA", err.Error(), common.ErrMalformedResponse)
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return extract.RemoteResult{}, common.NewAppError("REMOTE_DECODE", err.Error(), common.ErrMalformedResponse)
	}
	if !r.Success || r.Data == nil {
		return extract.RemoteResult{}, common.NewAppError("REMOTE_UNSUCCESSFUL", r.Error, common.ErrMalformedResponse)
	}

	out := extract.RemoteResult{
		MerchantName: r.Data.MerchantName,
		Total:        r.Data.Total,
		Items:        resolveItems(r.Data.Items),
	}

	c.logger.Info("remote.extract.ok",
		"req_id", rid,
		"merchant", out.MerchantName,
		"items", len(out.Items),
		"has_total", out.Total != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// resolveItems applies the usable-price rule: totalPrice if > 0, else
// unitPrice * quantity if > 0, else no price.
func resolveItems(items []wireItem) []extract.ExtractedItem {
	out := make([]extract.ExtractedItem, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		resolved := extract.ExtractedItem{Name: it.Name, Quantity: qty}
		switch {
		case it.TotalPrice > 0:
			p := it.TotalPrice
			resolved.Price = &p
		case it.UnitPrice > 0:
			p := it.UnitPrice * float64(qty)
			resolved.Price = &p
		}
		out = append(out, resolved)
	}
	return out
}

// buildMultipartBody assembles the upload: the first page under field
// "receipt" as JPEG, plus optional location text fields.
func buildMultipartBody(firstPage []byte, hint *extract.LocationHint) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="receipt"; filename="receipt.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(firstPage); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}

	if hint != nil {
		fields := map[string]string{
			"location_hint":      fmt.Sprintf("%.6f,%.6f", hint.Latitude, hint.Longitude),
			"location_latitude":  strconv.FormatFloat(hint.Latitude, 'f', 6, 64),
			"location_longitude": strconv.FormatFloat(hint.Longitude, 'f', 6, 64),
		}
		if !hint.CapturedAt.IsZero() {
			fields["location_timestamp"] = hint.CapturedAt.UTC().Format(time.RFC3339)
		}
		if hint.AccuracyMeters != nil {
			fields["location_accuracy_meters"] = strconv.FormatFloat(*hint.AccuracyMeters, 'f', 1, 64)
		}
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
