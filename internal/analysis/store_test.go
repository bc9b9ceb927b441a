// SPDX-License-Identifier: MIT
package analysis

import (
	"sync"
	"testing"
)

const (
	testHistoryWidth = 200
	testBins         = 256
)

func uniformFrame(bins int, v float64) []float64 {
	frame := make([]float64, bins)
	for i := range frame {
		frame[i] = v
	}
	return frame
}

func TestHistoryPrefill(t *testing.T) {
	h := NewHistory(testHistoryWidth, testBins)

	snapshot := h.Snapshot()
	if len(snapshot) != testHistoryWidth {
		t.Fatalf("snapshot length = %d, want %d", len(snapshot), testHistoryWidth)
	}
	for i, frame := range snapshot {
		if len(frame) != testBins {
			t.Fatalf("frame %d length = %d, want %d", i, len(frame), testBins)
		}
		for j, v := range frame {
			if v != 0 {
				t.Fatalf("frame %d bin %d = %g, want 0 pre-fill", i, j, v)
			}
		}
	}
}

func TestHistoryRotation(t *testing.T) {
	h := NewHistory(testHistoryWidth, testBins)

	// Push more frames than the store holds.
	pushes := testHistoryWidth*2 + 17
	for k := 1; k <= pushes; k++ {
		h.Push(uniformFrame(testBins, float64(k)))
	}

	snapshot := h.Snapshot()
	if len(snapshot) != testHistoryWidth {
		t.Fatalf("snapshot length = %d, want %d", len(snapshot), testHistoryWidth)
	}

	// Position 0 is the most recent push; age increases with index.
	for i, frame := range snapshot {
		want := float64(pushes - i)
		if frame[0] != want {
			t.Fatalf("snapshot[%d] = frame %g, want %g", i, frame[0], want)
		}
	}
}

func TestHistorySnapshotIndependence(t *testing.T) {
	h := NewHistory(4, 8)
	h.Push(uniformFrame(8, 1))

	snapshot := h.Snapshot()
	snapshot[0][0] = 99

	if again := h.Snapshot(); again[0][0] != 1 {
		t.Errorf("mutating a snapshot leaked into the store: got %g", again[0][0])
	}
}

// TestHistoryNoTearing pushes from one goroutine while snapshotting from
// another. Every observed frame must be internally consistent (uniform, by
// construction) and every snapshot complete.
func TestHistoryNoTearing(t *testing.T) {
	h := NewHistory(64, 32)

	const pushes = 5000
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for k := 1; k <= pushes; k++ {
			h.Push(uniformFrame(32, float64(k)))
		}
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}

		snapshot := h.Snapshot()
		if len(snapshot) != 64 {
			t.Fatalf("snapshot length = %d, want 64", len(snapshot))
		}
		for i, frame := range snapshot {
			for j, v := range frame {
				if v != frame[0] {
					t.Fatalf("torn frame %d: bin %d = %g, bin 0 = %g", i, j, v, frame[0])
				}
			}
		}
	}
}
