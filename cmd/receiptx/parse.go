package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/splitbill/receipt-extract/internal/export"
	"github.com/splitbill/receipt-extract/internal/extract"
	"github.com/splitbill/receipt-extract/internal/pipeline"
)

// newParseCmd runs the local heuristic pipeline over a file of recognized
// lines, one per line in top-to-bottom order.
func newParseCmd(logger *slog.Logger) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "parse <lines-file>",
		Short: "Run the local pipeline over recognized text lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}
			result := pipeline.NewLocalPipeline(logger).Run(lines)
			return writeResult(result, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the extraction as XLSX to this path instead of JSON on stdout")
	return cmd
}

func readLines(path string) ([]extract.RawTextLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lines file: %w", err)
	}
	defer f.Close()

	var lines []extract.RawTextLine
	sc := bufio.NewScanner(f)
	for i := 0; sc.Scan(); i++ {
		lines = append(lines, extract.RawTextLine{Text: sc.Text(), Y: float64(i)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines file: %w", err)
	}
	return lines, nil
}

func writeResult(result extract.Extraction, out string) error {
	if out != "" {
		b, err := export.ExtractionXLSX(result)
		if err != nil {
			return fmt.Errorf("render xlsx: %w", err)
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
