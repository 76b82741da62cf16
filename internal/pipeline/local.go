package pipeline

import (
	"log/slog"

	"github.com/splitbill/receipt-extract/internal/extract"
	"github.com/splitbill/receipt-extract/internal/parse"
)

// LocalPipeline is the heuristic extraction path: normalize recognized lines,
// classify them, parse item lines, dedupe, and independently score a total.
// Stateless; safe for concurrent use.
type LocalPipeline struct {
	Logger *slog.Logger
}

func NewLocalPipeline(logger *slog.Logger) *LocalPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalPipeline{Logger: logger}
}

// Run executes the full local pipeline over the concatenated recognized
// lines of every captured page.
func (p *LocalPipeline) Run(lines []extract.RawTextLine) extract.Extraction {
	normalized := parse.NormalizeAll(lines)
	labels := parse.ClassifyAll(normalized)

	items := parse.ParseItems(normalized, labels)
	items = parse.Dedupe(items)
	total := parse.ExtractTotal(normalized)

	p.Logger.Info("pipeline.local.ok",
		"lines_in", len(lines),
		"lines_normalized", len(normalized),
		"items", len(items),
		"has_total", total != nil,
	)
	return extract.Extraction{Items: items, ReceiptTotal: total}
}
