package loaders

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// DecodeCSV parses comma separated rows keyed by the header line.
func DecodeCSV(ctx context.Context, name string, data []byte) (any, error) {
	return decodeDelimited(ctx, data, ',')
}

// DecodeTSV parses tab separated rows keyed by the header line.
func DecodeTSV(ctx context.Context, name string, data []byte) (any, error) {
	return decodeDelimited(ctx, data, '\t')
}

// Tabular returns a Decoder for an arbitrary single-rune delimiter.
func Tabular(delimiter rune) Decoder {
	return func(ctx context.Context, _ string, data []byte) (any, error) {
		return decodeDelimited(ctx, data, delimiter)
	}
}

// decodeDelimited yields []any of map[string]any rows. Short rows leave the
// missing columns empty; extra cells without a header are dropped.
func decodeDelimited(ctx context.Context, data []byte, delimiter rune) (any, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = delimiter == '\t'

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []any{}, nil
	}
	if err != nil {
		return nil, err
	}
	for idx, column := range header {
		header[idx] = strings.TrimSpace(column)
	}

	rows := make([]any, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(header))
		for idx, column := range header {
			if column == "" {
				continue
			}
			value := ""
			if idx < len(record) {
				value = record[idx]
			}
			row[column] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
