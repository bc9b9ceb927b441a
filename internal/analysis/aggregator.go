// SPDX-License-Identifier: MIT
package analysis

// FrameAggregator converts an arbitrarily chunked sample stream into
// contiguous, non-overlapping analysis windows of exactly windowSize
// samples. Concatenating the emitted windows reproduces the input stream
// sample for sample.
type FrameAggregator struct {
	windowSize int
	pending    []float64
}

func NewFrameAggregator(windowSize int) *FrameAggregator {
	return &FrameAggregator{
		windowSize: windowSize,
		pending:    make([]float64, 0, 2*windowSize),
	}
}

// Ingest appends chunk to the pending buffer and calls emit once for every
// complete window that becomes available, in stream order. Empty chunks are
// no-ops. The slice passed to emit is reused; callers must copy anything
// they keep. After Ingest returns, fewer than windowSize samples remain
// pending.
func (a *FrameAggregator) Ingest(chunk []float64, emit func(window []float64)) {
	a.pending = append(a.pending, chunk...)
	for len(a.pending) >= a.windowSize {
		emit(a.pending[:a.windowSize])
		n := copy(a.pending, a.pending[a.windowSize:])
		a.pending = a.pending[:n]
	}
}

// Pending returns the number of buffered samples not yet part of a window.
func (a *FrameAggregator) Pending() int {
	return len(a.pending)
}
