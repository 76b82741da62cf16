package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/splitbill/receipt-extract/internal/extract"
	"github.com/splitbill/receipt-extract/internal/pipeline"
)

// Service exposes the extraction orchestrator over HTTP. It adds no
// semantics of its own: one multipart request in, one Extraction out.
type Service struct {
	Processor *pipeline.Processor
	Logger    *slog.Logger
}

func NewService(p *pipeline.Processor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Processor: p, Logger: logger}
}

// Register mounts the extraction routes on a gin engine.
func (s *Service) Register(r *gin.Engine) {
	r.GET("/healthz", s.health)
	r.POST("/v1/extractions", s.createExtraction)
}

func (s *Service) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createExtraction accepts ordered page images under "pages", optional
// pre-recognized lines as JSON under "lines", and optional location fields.
func (s *Service) createExtraction(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	var pages [][]byte
	for _, fh := range form.File["pages"] {
		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable page upload"})
			return
		}
		b, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable page upload"})
			return
		}
		pages = append(pages, b)
	}

	var lines []extract.RawTextLine
	if raw := c.PostForm("lines"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lines must be a JSON array of text lines"})
			return
		}
	}

	req := pipeline.Request{
		Pages:    pages,
		Lines:    lines,
		Location: parseLocation(c),
	}

	result := s.Processor.Extract(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

func parseLocation(c *gin.Context) *extract.LocationHint {
	latStr, lngStr := c.PostForm("location_latitude"), c.PostForm("location_longitude")
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	hint := &extract.LocationHint{Latitude: lat, Longitude: lng}
	if acc, err := strconv.ParseFloat(c.PostForm("location_accuracy_meters"), 64); err == nil {
		hint.AccuracyMeters = &acc
	}
	if ts, err := time.Parse(time.RFC3339, c.PostForm("location_timestamp")); err == nil {
		hint.CapturedAt = ts
	}
	return hint
}
