package parallelism

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

// TestForEachStrideEmpty verifies that an empty index space invokes
// nothing and succeeds.
func TestForEachStrideEmpty(t *testing.T) {
	invoked := false
	err := ForEachStride(0, 0, func(int) error {
		invoked = true
		return nil
	})
	if err != nil {
		t.Error("empty index space failed:", err)
	}
	if invoked {
		t.Error("empty index space invoked the workload")
	}
}

// TestForEachStrideCoversAllIndices verifies that every index is visited
// exactly once, with each output slot written by a single worker.
func TestForEachStrideCoversAllIndices(t *testing.T) {
	const count = 1000
	visits := make([]uint32, count)
	err := ForEachStride(count, 7, func(index int) error {
		atomic.AddUint32(&visits[index], 1)
		return nil
	})
	if err != nil {
		t.Fatal("fan-out failed:", err)
	}
	for i, v := range visits {
		if v != 1 {
			t.Error("index", i, "visited", v, "times")
		}
	}
}

// TestForEachStrideMoreWorkersThanIndices verifies behavior when the
// worker count exceeds the index space.
func TestForEachStrideMoreWorkersThanIndices(t *testing.T) {
	var visited uint32
	if err := ForEachStride(3, 64, func(int) error {
		atomic.AddUint32(&visited, 1)
		return nil
	}); err != nil {
		t.Fatal("fan-out failed:", err)
	}
	if visited != 3 {
		t.Error("incorrect visit count:", visited)
	}
}

// TestForEachStrideSurfacesError verifies that a workload error is
// surfaced after all workers have joined.
func TestForEachStrideSurfacesError(t *testing.T) {
	err := ForEachStride(100, 4, func(index int) error {
		if index == 42 {
			return errors.New("workload failure")
		}
		return nil
	})
	if err == nil {
		t.Error("workload error not surfaced")
	}
}
