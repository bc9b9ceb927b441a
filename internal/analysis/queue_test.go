// SPDX-License-Identifier: MIT
package analysis

import "testing"

func TestQueueOrder(t *testing.T) {
	q := NewChunkQueue()

	const n = 1000
	for i := 0; i < n; i++ {
		q.In() <- []float64{float64(i)}
	}
	q.Close()

	i := 0
	for chunk := range q.Out() {
		if chunk[0] != float64(i) {
			t.Fatalf("chunk %d = %g, out of order", i, chunk[0])
		}
		i++
	}
	if i != n {
		t.Fatalf("received %d chunks, want %d", i, n)
	}
}

// TestQueueProducerNeverBlocks sends a large backlog with no consumer
// running; the test deadlocks if the inlet can block on the consumer.
func TestQueueProducerNeverBlocks(t *testing.T) {
	q := NewChunkQueue()

	const n = 10000
	for i := 0; i < n; i++ {
		q.In() <- make([]float64, 128)
	}
	q.Close()

	received := 0
	for range q.Out() {
		received++
	}
	if received != n {
		t.Fatalf("received %d chunks, want %d", received, n)
	}
}

func TestQueueCloseDrains(t *testing.T) {
	q := NewChunkQueue()

	q.In() <- []float64{1}
	q.In() <- []float64{2}
	q.Close()

	if chunk := <-q.Out(); chunk[0] != 1 {
		t.Fatalf("first chunk = %g, want 1", chunk[0])
	}
	if chunk := <-q.Out(); chunk[0] != 2 {
		t.Fatalf("second chunk = %g, want 2", chunk[0])
	}
	if _, ok := <-q.Out(); ok {
		t.Fatal("outlet still open after drain")
	}
}
