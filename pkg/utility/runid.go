package utility

import (
	"sync"

	"github.com/google/uuid"
)

// RunID tags every score report produced by one process.
type RunID = uuid.UUID

var runID = sync.OnceValue(func() RunID {
	return uuid.Must(uuid.NewV7())
})

func GetRunID() RunID {
	return runID()
}
