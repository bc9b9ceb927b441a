// SPDX-License-Identifier: MIT
// Package transport provides viewer-facing feeds for spectral frames. The
// pipeline pushes each new frame through a Transport; the WebSocket
// implementation lets browsers watch the spectrogram live.
package transport

// Transport forwards spectral frames to an external viewer surface.
// Implementations must be thread-safe and rate-limit internally rather than
// block the pipeline worker.
type Transport interface {
	Send(frame []float64) error
	Close() error
}
