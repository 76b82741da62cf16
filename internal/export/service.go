package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/splitbill/receipt-extract/internal/extract"
)

const sheet = "Receipt"

// ExtractionXLSX renders an Extraction as an XLSX workbook: one row per
// item, a trailing total row, optional merchant header. Pure rendering —
// nothing is persisted by the engine itself.
func ExtractionXLSX(ex extract.Extraction) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 1
	if ex.MerchantName != "" {
		write(1, row, "Merchant")
		write(2, row, ex.MerchantName)
		row++
	}

	headers := []string{"Item", "Quantity", "Price"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++

	for _, it := range ex.Items {
		write(1, row, it.Name)
		write(2, row, it.Quantity)
		if it.Price != nil {
			write(3, row, *it.Price)
		}
		row++
	}

	if ex.ReceiptTotal != nil {
		write(1, row, "Total")
		write(3, row, *ex.ReceiptTotal)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
