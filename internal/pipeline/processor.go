package pipeline

import (
	"context"
	"log/slog"

	"github.com/splitbill/receipt-extract/internal/common"
	"github.com/splitbill/receipt-extract/internal/extract"
	"github.com/splitbill/receipt-extract/internal/imageprep"
)

// Orchestrator states. Failures downgrade the machine instead of aborting it;
// no state ever surfaces an error to the caller.
type state string

const (
	stateNotStarted       state = "NOT_STARTED"
	stateRemoteAttempted  state = "REMOTE_ATTEMPTED"
	stateLocalPipelineRun state = "LOCAL_PIPELINE_RUN"
	stateFallback         state = "FALLBACK"
	stateDone             state = "DONE"
)

// Request is one extraction call: captured page images in order, optionally
// pre-recognized lines (skipping the Recognizer), and a location hint.
type Request struct {
	Pages    [][]byte
	Lines    []extract.RawTextLine
	Location *extract.LocationHint
}

// Processor drives the end-to-end extraction cascade: remote service first,
// local heuristic pipeline on any remote failure or empty item result, with
// partial remote signals (total, merchant) merged into the local result.
// Stateless across calls.
type Processor struct {
	Logger     *slog.Logger
	Remote     extract.RemoteExtractor // optional
	Recognizer extract.Recognizer      // optional; unused when Request.Lines is set
	Local      *LocalPipeline
}

func NewProcessor(logger *slog.Logger, remote extract.RemoteExtractor, recognizer extract.Recognizer, local *LocalPipeline) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if local == nil {
		local = NewLocalPipeline(logger)
	}
	return &Processor{Logger: logger, Remote: remote, Recognizer: recognizer, Local: local}
}

// Extract runs the state machine to completion and always returns a
// well-formed (possibly empty) Extraction.
func (p *Processor) Extract(ctx context.Context, req Request) extract.Extraction {
	st := stateNotStarted

	if len(req.Pages) == 0 && len(req.Lines) == 0 {
		p.Logger.Info("processor.done", "state", stateDone, "reason", "empty input")
		return extract.Extraction{Items: []extract.ExtractedItem{}}
	}

	// Remote attempt: single try, never retried. A usable partial result
	// (total or merchant despite empty items) is kept for the merge step.
	var remotePartial extract.RemoteResult
	if p.Remote != nil && len(req.Pages) > 0 {
		st = stateRemoteAttempted
		res, err := p.tryRemote(ctx, req)
		switch {
		case err != nil:
			p.Logger.Warn("processor.remote.failed", "state", st, "error", err)
		case len(res.Items) > 0:
			p.Logger.Info("processor.done",
				"state", stateDone, "strategy", "remote",
				"items", len(res.Items), "has_total", res.Total != nil)
			return extract.Extraction{
				Items:        res.Items,
				ReceiptTotal: res.Total,
				MerchantName: res.MerchantName,
			}
		default:
			remotePartial = res
			p.Logger.Info("processor.remote.empty_items", "state", st, "has_total", res.Total != nil)
		}
	}

	// Local heuristic pipeline over the concatenated lines of all pages.
	st = stateLocalPipelineRun
	lines, err := p.recognizedLines(ctx, req)
	if err != nil {
		p.Logger.Warn("processor.recognition.failed", "state", st, "error", err)
	}
	result := p.Local.Run(lines)

	// Merge partial remote signals into an otherwise-empty local result.
	st = stateFallback
	if result.ReceiptTotal == nil && remotePartial.Total != nil && *remotePartial.Total > 0 {
		result.ReceiptTotal = remotePartial.Total
		p.Logger.Info("processor.merge.remote_total", "state", st, "total", *remotePartial.Total)
	}
	if result.MerchantName == "" && remotePartial.MerchantName != "" {
		result.MerchantName = remotePartial.MerchantName
	}

	p.Logger.Info("processor.done",
		"state", stateDone, "strategy", "local",
		"items", len(result.Items), "has_total", result.ReceiptTotal != nil)
	return result
}

// tryRemote prepares the first page and performs the single remote attempt.
// Context cancellation aborts the upload and discards any partial response.
func (p *Processor) tryRemote(ctx context.Context, req Request) (extract.RemoteResult, error) {
	jpeg, err := imageprep.PrepareJPEG(req.Pages[0])
	if err != nil {
		return extract.RemoteResult{}, err
	}
	res, err := p.Remote.Extract(ctx, jpeg, req.Location)
	if err != nil {
		return extract.RemoteResult{}, err
	}
	if err := ctx.Err(); err != nil {
		// the scan session was cancelled mid-flight; discard the result
		return extract.RemoteResult{}, common.NewAppError("REMOTE_CANCELLED", err.Error(), common.ErrNetworkFailure)
	}
	return res, nil
}

// recognizedLines returns the caller-supplied lines, or runs the external
// Recognizer over every page sequentially so the pipeline starts only on
// complete input.
func (p *Processor) recognizedLines(ctx context.Context, req Request) ([]extract.RawTextLine, error) {
	if len(req.Lines) > 0 {
		return req.Lines, nil
	}
	if p.Recognizer == nil {
		return nil, common.NewAppError("RECOGNIZE_UNAVAILABLE", "no recognizer configured", common.ErrLocalRecognitionFailure)
	}
	var all []extract.RawTextLine
	for i, page := range req.Pages {
		lines, err := p.Recognizer.Recognize(ctx, page)
		if err != nil {
			return nil, common.NewAppError("RECOGNIZE_PAGE", err.Error(), common.ErrLocalRecognitionFailure)
		}
		for _, l := range lines {
			l.Page = i
			all = append(all, l)
		}
	}
	if len(all) == 0 {
		return nil, common.NewAppError("RECOGNIZE_EMPTY", "recognition yielded no text", common.ErrLocalRecognitionFailure)
	}
	return all, nil
}
