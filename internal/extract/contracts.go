package extract

import (
	"context"
	"time"
)

// RawTextLine is one recognized text line with its position within a scan.
// Page plus the relative vertical/horizontal position order multi-page and
// multi-column text before parsing.
type RawTextLine struct {
	Text string  `json:"text"`
	Page int     `json:"page"`
	Y    float64 `json:"y"`
	X    float64 `json:"x"`
}

// ExtractedItem is a single purchasable line item. Price, when present, is
// the line total for Quantity units, not a unit price.
type ExtractedItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// Extraction is the final structured result of one receipt scan. It is
// immutable once returned; item order follows source line order.
type Extraction struct {
	Items        []ExtractedItem `json:"items"`
	ReceiptTotal *float64        `json:"receiptTotal,omitempty"`
	MerchantName string          `json:"merchantName,omitempty"`
}

// LocationHint is the optional capture location forwarded to the remote
// extraction service.
type LocationHint struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64
	CapturedAt     time.Time
}

// Recognizer is the external text-recognition step: page image bytes to raw
// lines. It is a collaborator, not part of this engine.
type Recognizer interface {
	Recognize(ctx context.Context, page []byte) ([]RawTextLine, error)
}

// RemoteResult is the remote service response after per-item price resolution.
type RemoteResult struct {
	MerchantName string
	Total        *float64
	Items        []ExtractedItem
}

// RemoteExtractor is the remote receipt-processing service. A single attempt
// per extraction call; never retried.
type RemoteExtractor interface {
	Extract(ctx context.Context, firstPage []byte, hint *LocationHint) (RemoteResult, error)
}
