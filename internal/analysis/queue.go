// SPDX-License-Identifier: MIT
package analysis

// ChunkQueue is the hand-off channel between the audio callback and the
// pipeline worker: multiple producers, a single consumer, and effectively
// unbounded capacity so the real-time producer never stalls. Backpressure is
// deliberately absent; dropping or blocking audio samples is worse than
// letting the backlog grow, and the transform is assumed faster than
// real-time arrival.
type ChunkQueue struct {
	in  chan []float64
	out chan []float64
}

func NewChunkQueue() *ChunkQueue {
	q := &ChunkQueue{
		in:  make(chan []float64, 64),
		out: make(chan []float64),
	}
	go q.shuttle()
	return q
}

// In returns the producer side. Ownership of a chunk transfers on send.
func (q *ChunkQueue) In() chan<- []float64 {
	return q.in
}

// Out returns the consumer side. Chunks arrive in send order. The channel
// closes once Close has been called and the backlog has drained.
func (q *ChunkQueue) Out() <-chan []float64 {
	return q.out
}

// Close stops intake. Safe to call once; producers must not send afterwards.
func (q *ChunkQueue) Close() {
	close(q.in)
}

// shuttle moves chunks from in to out, buffering whatever the consumer has
// not yet taken so sends on in never wait on the consumer.
func (q *ChunkQueue) shuttle() {
	var backlog [][]float64
	for {
		if len(backlog) == 0 {
			chunk, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			backlog = append(backlog, chunk)
		}

		select {
		case chunk, ok := <-q.in:
			if !ok {
				for _, c := range backlog {
					q.out <- c
				}
				close(q.out)
				return
			}
			backlog = append(backlog, chunk)
		case q.out <- backlog[0]:
			backlog[0] = nil
			backlog = backlog[1:]
		}
	}
}
