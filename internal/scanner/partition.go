// internal/scanner/partition.go
// Deterministic interleaved partitioning of the port space

package scanner

import (
	"fmt"

	"github.com/aspnmy/portsweep/internal/models"
)

// Partition splits [1, 65535] into workers interleaved strides.
// Worker i starts at port i+1 and advances by workers, so the strides form
// a disjoint cover of the port range.
func Partition(workers int) ([]models.Stride, error) {
	if workers < 1 || workers > models.MaxPort {
		return nil, &ScannerError{
			Message: fmt.Sprintf("invalid configuration (workers=%d)", workers),
			Cause:   ErrInvalidWorkerCount,
		}
	}

	strides := make([]models.Stride, workers)
	for i := range strides {
		strides[i] = models.Stride{
			Offset: i,
			Start:  i + 1,
			Step:   workers,
		}
	}
	return strides, nil
}
