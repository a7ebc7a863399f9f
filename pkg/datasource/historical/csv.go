package historical

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrColumnNotFound = errors.New("column not found")

// LoadCSVReturns reads the named column of a CSV file with a header row.
// NaN and Inf spellings are accepted and kept as data.
func LoadCSVReturns(path, column string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return ReadCSVReturns(file, column)
}

func ReadCSVReturns(r io.Reader, column string) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var returns []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read line %d: %w", line, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		returns = append(returns, value)
	}

	return returns, nil
}
