package historical

import (
	"errors"
	"fmt"
	"time"
)

const invalidIndex = -1

// ReturnReader walks the records of a time ordered returns file whose
// timestamps fall within [from, to].
type ReturnReader struct {
	source *Source[BinaryReturn]

	from int64
	to   int64
	idx  int64
}

func NewReturnReader(source *Source[BinaryReturn], from, to time.Time) *ReturnReader {
	return &ReturnReader{
		source: source,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

// GetNext returns ErrEof once the range is exhausted.
func (r *ReturnReader) GetNext() (BinaryReturn, error) {
	var entry BinaryReturn

	if r.idx == invalidIndex {
		if err := r.lookupStartIndex(); err != nil {
			return entry, err
		}
	}

	if err := r.source.Read(r.idx, &entry); err != nil {
		return entry, fmt.Errorf("error reading entry at index %d: %w", r.idx, err)
	}
	r.idx++

	if entry.TimeStamp > r.to {
		return entry, ErrEof
	}
	return entry, nil
}

// ReadAll drains the reader into a returns series.
func (r *ReturnReader) ReadAll() ([]float64, error) {
	var returns []float64
	for {
		entry, err := r.GetNext()
		if err != nil {
			if errors.Is(err, ErrEof) {
				return returns, nil
			}
			return nil, err
		}
		returns = append(returns, entry.Value)
	}
}

func (r *ReturnReader) lookupStartIndex() error {
	entryCount, err := r.source.EntryCount()
	if err != nil {
		return fmt.Errorf("error getting entry count: %w", err)
	}

	if entryCount == 0 {
		return ErrEof
	}

	var entry BinaryReturn

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2

		if err := r.source.Read(mid, &entry); err != nil {
			return fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}

		if entry.TimeStamp < r.from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return ErrEof
	}

	r.idx = low
	return nil
}

// LoadBinaryReturnsRange reads the records of a time ordered returns file
// whose timestamps fall within [from, to].
func LoadBinaryReturnsRange(path string, from, to time.Time) ([]float64, error) {
	source := NewSource[BinaryReturn](path)
	if err := source.Open(); err != nil {
		return nil, err
	}
	defer source.Close()

	return NewReturnReader(source, from, to).ReadAll()
}
