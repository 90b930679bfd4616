package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// templateSheet is the sheet name used for XLSX templates.
const templateSheet = "Products"

// WriteTemplate writes a header-only CSV of every known column.
func WriteTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns()); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}

	writer.Flush()

	return writer.Error()
}

// WriteTemplateFile writes the template to path, as XLSX when the extension
// is .xlsx and as CSV otherwise.
func WriteTemplateFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSXTemplate(path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if err := WriteTemplate(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func writeXLSXTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("failed to name template sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range Columns() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}

		if err := f.SetCellValue(templateSheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header %s: %w", col, err)
		}

		if err := f.SetCellStyle(templateSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	return nil
}
