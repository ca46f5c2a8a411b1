// ABOUTME: CSV sample import and value export
// ABOUTME: Reads one- or two-column sample series and writes single-column reports
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/encode"
)

// OpenCSV reads a headerless CSV of samples. Two-column files are
// treated as (time, value) and keep the second column; anything else is
// read row by row. Values are normalized to the int16 peak and tagged
// as mono at CSVSampleRate.
func OpenCSV(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	values, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}

	return &Track{
		Format: audio.PCM16(CSVSampleRate, 1),
		PCM:    encode.PCM16(audio.Normalize(values)),
	}, nil
}

// ReadCSV parses sample values from r
func ReadCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	twoColumns := len(records) > 0
	for _, rec := range records {
		if len(rec) != 2 {
			twoColumns = false
			break
		}
	}

	var values []float64
	for line, rec := range records {
		fields := rec
		if twoColumns {
			fields = rec[1:]
		}
		for _, field := range fields {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid sample %q: %w", line+1, field, err)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// WriteCSV writes a one-column CSV with a header row
func WriteCSV(path, header string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{header}); err != nil {
		f.Close()
		return err
	}
	for _, v := range values {
		if err := w.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return f.Close()
}
