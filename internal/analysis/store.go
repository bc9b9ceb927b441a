// SPDX-License-Identifier: MIT
package analysis

import "sync"

// History is a fixed-capacity rolling store of spectral frames, newest
// first. The pipeline worker is the sole writer; renderers on their own
// schedule read point-in-time snapshots. Frames are never mutated after
// insertion, and readers always observe exactly Width() frames.
//
// The concurrency-sensitive surface is confined to Push and Snapshot; there
// is no raw indexed access. Both hold the lock only for a rotate-and-insert
// or a plain copy, never for transform work.
type History struct {
	mu     sync.RWMutex
	frames [][]float64 // ring storage
	head   int         // ring index of the most recent frame
	width  int
	bins   int
}

// NewHistory allocates a history of width zero-valued frames of bins values
// each. The store is never resized afterwards, only rotated.
func NewHistory(width, bins int) *History {
	frames := make([][]float64, width)
	for i := range frames {
		frames[i] = make([]float64, bins)
	}
	return &History{frames: frames, width: width, bins: bins}
}

// Push atomically discards the oldest frame and inserts frame as the newest.
// The caller hands over ownership; frame must not be modified afterwards.
func (h *History) Push(frame []float64) {
	h.mu.Lock()
	h.head = (h.head - 1 + h.width) % h.width
	h.frames[h.head] = frame
	h.mu.Unlock()
}

// Snapshot returns an independent copy of the full history ordered newest
// first. A concurrent Push is either fully visible or not at all.
func (h *History) Snapshot() [][]float64 {
	out := make([][]float64, h.width)
	for i := range out {
		out[i] = make([]float64, h.bins)
	}

	h.mu.RLock()
	for i := range out {
		copy(out[i], h.frames[(h.head+i)%h.width])
	}
	h.mu.RUnlock()

	return out
}

// Width returns the fixed number of frames held.
func (h *History) Width() int {
	return h.width
}

// Bins returns the number of values per frame.
func (h *History) Bins() int {
	return h.bins
}
