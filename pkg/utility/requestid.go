package utility

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// RequestID is a time ordered identifier for scoring requests that arrive
// without one of their own.
type RequestID = uint64

const (
	nodeBits     = 10
	sequenceBits = 13

	maxSequence = 1<<sequenceBits - 1
	maxNode     = 1<<nodeBits - 1

	timestampShift = nodeBits + sequenceBits
	nodeShift      = sequenceBits
)

var (
	sequence atomic.Uint64
	nodeID   = uint64(uuid.New().ID()) & maxNode
	epoch    = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

func NewRequestID() RequestID {
	timestamp := uint64(time.Now().UnixMilli() - epoch)
	seq := sequence.Add(1) & maxSequence

	if seq == 0 {
		time.Sleep(time.Millisecond)
		timestamp = uint64(time.Now().UnixMilli() - epoch)
	}

	return (timestamp << timestampShift) | (nodeID << nodeShift) | seq
}

func ParseRequestID(id RequestID) (timestamp time.Time, node uint64, seq uint64) {
	seq = id & maxSequence
	node = (id >> nodeShift) & maxNode
	timestamp = time.UnixMilli(epoch + int64(id>>timestampShift))
	return
}
