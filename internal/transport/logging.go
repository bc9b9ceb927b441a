// SPDX-License-Identifier: MIT
package transport

import applog "spectro/internal/log"

// LoggingTransport implements Transport by logging frame arrival at debug
// level. Useful when running headless without a WebSocket client.
type LoggingTransport struct{}

func NewLoggingTransport() *LoggingTransport {
	applog.Infof("Transport: using logging transport")
	return &LoggingTransport{}
}

// Send logs the frame size; the logging transport never fails to "send".
func (lt *LoggingTransport) Send(frame []float64) error {
	applog.Debugf("Transport: frame received (%d bins)", len(frame))
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
