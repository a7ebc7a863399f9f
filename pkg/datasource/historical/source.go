package historical

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEof = errors.New("EOF")

// BinaryReturn is one little-endian record of a returns file.
type BinaryReturn struct {
	TimeStamp int64
	Value     float64
}

// Source memory maps a file of fixed-size records of type T.
type Source[T any] struct {
	dataSourceName string
	reader         *mmap.ReaderAt
	bufferPool     *sync.Pool
}

func NewSource[T any](dataSourceName string) *Source[T] {
	return &Source[T]{
		dataSourceName: dataSourceName,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, int(unsafe.Sizeof(*new(T))))
				return &buffer
			},
		},
	}
}

func (s *Source[T]) Open() error {
	var err error
	s.reader, err = mmap.Open(s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", s.dataSourceName, err)
	}
	return nil
}

func (s *Source[T]) Close() {
	if s.reader != nil {
		_ = s.reader.Close()
	}
}

func (s *Source[T]) Read(index int64, data *T) error {
	buffer := s.bufferPool.Get().(*[]byte)
	defer s.bufferPool.Put(buffer)

	offset := index * int64(len(*buffer))
	if offset >= int64(s.reader.Len()) {
		return ErrEof
	}

	n, err := s.reader.ReadAt(*buffer, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read: %w", err)
	}
	if n < len(*buffer) {
		return ErrEof
	}

	*data = *(*T)(unsafe.Pointer(&(*buffer)[0])) // #nosec G103
	return nil
}

func (s *Source[T]) EntryCount() (int64, error) {
	entrySize := int64(unsafe.Sizeof(*new(T)))
	if entrySize == 0 {
		return 0, fmt.Errorf("size of T is zero")
	}

	totalSize := int64(s.reader.Len())
	if totalSize%entrySize != 0 {
		return 0, fmt.Errorf("data source %q size %d is not a multiple of entry size %d", s.dataSourceName, totalSize, entrySize)
	}

	return totalSize / entrySize, nil
}

// LoadBinaryReturns reads every record of a returns file in file order.
func LoadBinaryReturns(path string) ([]float64, error) {
	source := NewSource[BinaryReturn](path)
	if err := source.Open(); err != nil {
		return nil, err
	}
	defer source.Close()

	count, err := source.EntryCount()
	if err != nil {
		return nil, err
	}

	returns := make([]float64, 0, count)
	var entry BinaryReturn
	for i := int64(0); i < count; i++ {
		if err := source.Read(i, &entry); err != nil {
			return nil, fmt.Errorf("error reading entry at index %d: %w", i, err)
		}
		returns = append(returns, entry.Value)
	}
	return returns, nil
}
