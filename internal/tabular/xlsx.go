package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"schemagen/internal/models"
)

type xlsxSource struct {
	rows   [][]string
	pos    int
	header *header
}

func openXLSX(path string, opts Options) (Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	sheetName := sheets[0]
	if opts.Sheet != "" {
		if idx, err := f.GetSheetIndex(opts.Sheet); err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, opts.Sheet)
		}

		sheetName = opts.Sheet
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	h, err := newHeader(rows[0])
	if err != nil {
		return nil, err
	}

	return &xlsxSource{rows: rows, pos: 1, header: h}, nil
}

func (s *xlsxSource) Next() (*models.ProductRow, error) {
	for s.pos < len(s.rows) {
		record := s.rows[s.pos]
		s.pos++

		if isBlank(record) {
			continue
		}

		// Sheet rows are 1-based and the header is row 1.
		return s.header.decode(record, s.pos)
	}

	return nil, io.EOF
}

func (s *xlsxSource) Header() []string {
	return s.header.names
}

func (s *xlsxSource) Unknown() []string {
	return s.header.unknown
}

func (s *xlsxSource) Close() error {
	return nil
}
