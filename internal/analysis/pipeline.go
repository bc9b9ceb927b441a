// SPDX-License-Identifier: MIT
/*
Package analysis implements the streaming spectral pipeline: an unbounded
stream of mono sample chunks in, a rolling spectrogram out.

Data flow:

	capture callback → ChunkQueue → worker goroutine → History ← Snapshot ← renderer
	                                (aggregate, FFT, push)

A single long-lived worker owns the aggregator, the transform, and exclusive
write access to the history. Chunks are processed strictly in arrival order,
one window at a time. Closing the pipeline closes the queue; the worker
drains, discards any partial window, and exits.
*/
package analysis

import (
	"fmt"

	applog "spectro/internal/log"
)

// Transport forwards freshly computed frames to an external consumer, such
// as a WebSocket feed. Implementations must be safe for repeated calls from
// the pipeline worker and should rate-limit internally rather than block.
type Transport interface {
	Send(frame []float64) error
}

// Pipeline ties the hand-off queue, aggregator, transform, and history
// together and runs the worker goroutine over them.
type Pipeline struct {
	agg       *FrameAggregator
	transform *Transform
	history   *History
	queue     *ChunkQueue
	transport Transport
	done      chan struct{}
}

// NewPipeline builds a pipeline for the given analysis window size (a power
// of two), history width in frames, and sample rate. transport may be nil.
func NewPipeline(windowSize, historyWidth int, sampleRate float64, transport Transport) (*Pipeline, error) {
	if historyWidth <= 0 {
		return nil, fmt.Errorf("history width must be positive, got %d", historyWidth)
	}

	transform, err := NewTransform(windowSize, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		agg:       NewFrameAggregator(windowSize),
		transform: transform,
		history:   NewHistory(historyWidth, transform.Bins()),
		queue:     NewChunkQueue(),
		transport: transport,
		done:      make(chan struct{}),
	}, nil
}

// Start launches the worker goroutine.
func (p *Pipeline) Start() {
	go p.run()
}

func (p *Pipeline) run() {
	defer close(p.done)

	for chunk := range p.queue.Out() {
		p.agg.Ingest(chunk, func(window []float64) {
			// Each stored frame is a fresh allocation: the history keeps it
			// forever (until rotated out) and never mutates it.
			frame := make([]float64, p.transform.Bins())
			p.transform.Process(window, frame)
			p.history.Push(frame)

			if p.transport != nil {
				if err := p.transport.Send(frame); err != nil {
					applog.Warnf("Pipeline: transport send failed: %v", err)
				}
			}
		})
	}
}

// In returns the chunk inlet for producers. Sends never wait on the worker.
func (p *Pipeline) In() chan<- []float64 {
	return p.queue.In()
}

// History returns the rolling spectrogram store for renderers to snapshot.
func (p *Pipeline) History() *History {
	return p.history
}

// Close stops intake and waits for the worker to drain and exit. Samples of
// an incomplete trailing window are discarded.
func (p *Pipeline) Close() error {
	p.queue.Close()
	<-p.done
	return nil
}
