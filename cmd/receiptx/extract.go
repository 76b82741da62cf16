package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/splitbill/receipt-extract/internal/common"
	"github.com/splitbill/receipt-extract/internal/pipeline"
	"github.com/splitbill/receipt-extract/internal/remote"
)

// newExtractCmd runs the full remote-then-local cascade over captured page
// images. Recognized lines may be supplied alongside the images so the local
// fallback has text to work with.
func newExtractCmd(logger *slog.Logger) *cobra.Command {
	var (
		out       string
		linesPath string
	)

	cmd := &cobra.Command{
		Use:   "extract <page-image...>",
		Short: "Run the remote-then-local extraction cascade over page images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pages [][]byte
			for _, path := range args {
				b, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read page %s: %w", path, err)
				}
				pages = append(pages, b)
			}

			req := pipeline.Request{Pages: pages}
			if linesPath != "" {
				lines, err := readLines(linesPath)
				if err != nil {
					return err
				}
				req.Lines = lines
			}

			cfg := common.LoadConfig()
			client := remote.NewClient(remote.Config{
				Endpoint: remote.ResolveEndpoint(cfg.Remote),
				Timeout:  cfg.Remote.Timeout,
			}, logger)
			proc := pipeline.NewProcessor(logger, client, nil, pipeline.NewLocalPipeline(logger))

			result := proc.Extract(cmd.Context(), req)
			return writeResult(result, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the extraction as XLSX to this path instead of JSON on stdout")
	cmd.Flags().StringVar(&linesPath, "lines", "", "file of pre-recognized text lines for the local fallback")
	return cmd
}
