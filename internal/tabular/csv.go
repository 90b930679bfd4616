package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"schemagen/internal/config"
	"schemagen/internal/models"
)

type csvSource struct {
	file   *os.File
	reader *csv.Reader
	header *header
}

func openCSV(path string, opts Options) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	decoded, err := decodeReader(file, opts.Encoding)
	if err != nil {
		file.Close()
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	cells, err := reader.Read()
	if err != nil {
		file.Close()

		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}

		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	h, err := newHeader(cells)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &csvSource{file: file, reader: reader, header: h}, nil
}

// decodeReader wraps r so it yields UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", config.EncodingUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case config.EncodingWindows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case config.EncodingISO88591:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, encoding)
	}
}

func (s *csvSource) Next() (*models.ProductRow, error) {
	for {
		record, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RecordError{Line: parseErr.StartLine, Err: parseErr.Err}
			}

			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if isBlank(record) {
			continue
		}

		line, _ := s.reader.FieldPos(0)

		return s.header.decode(record, line)
	}
}

func (s *csvSource) Header() []string {
	return s.header.names
}

func (s *csvSource) Unknown() []string {
	return s.header.unknown
}

func (s *csvSource) Close() error {
	return s.file.Close()
}
