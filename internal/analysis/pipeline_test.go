// SPDX-License-Identifier: MIT
package analysis

import (
	"math"
	"testing"

	"spectro/pkg/utils"
)

func TestPipelineSineTone(t *testing.T) {
	const f0 = 1000.0
	mock := &utils.MockTransport{}

	p, err := NewPipeline(testWindowSize, testHistoryWidth, testSampleRate, mock)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.Start()

	// Ten windows worth of tone, delivered in device-sized chunks.
	samples := utils.GenerateSineWave(testWindowSize*10, testSampleRate, f0)
	for _, chunk := range utils.SplitChunks(samples, 128) {
		p.In() <- chunk
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(mock.Frames) != 10 {
		t.Fatalf("produced %d frames, want 10", len(mock.Frames))
	}

	want := int(math.Round(f0 / (testSampleRate / 2) * float64(testWindowSize/2)))
	for k, frame := range mock.Frames {
		got := utils.FindPeakBin(frame, 0, len(frame)-1)
		if got < want-1 || got > want+1 {
			t.Errorf("frame %d: peak bin = %d, want %d ±1", k, got, want)
		}
	}

	// The newest history frame is the last one produced.
	snapshot := p.History().Snapshot()
	last := mock.Frames[len(mock.Frames)-1]
	for i := range last {
		if snapshot[0][i] != last[i] {
			t.Fatalf("snapshot[0] bin %d = %g, want %g", i, snapshot[0][i], last[i])
		}
	}
}

func TestPipelineSingleDCWindow(t *testing.T) {
	mock := &utils.MockTransport{}

	p, err := NewPipeline(testWindowSize, testHistoryWidth, testSampleRate, mock)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.Start()

	ones := make([]float64, testWindowSize)
	for i := range ones {
		ones[i] = 1.0
	}
	p.In() <- ones
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(mock.Frames) != 1 {
		t.Fatalf("produced %d frames, want exactly 1", len(mock.Frames))
	}

	frame := mock.Frames[0]
	if peak := utils.FindPeakBin(frame, 0, len(frame)-1); peak != 0 {
		t.Errorf("peak bin = %d, want 0 (DC)", peak)
	}
}

func TestPipelineDiscardsPartialWindow(t *testing.T) {
	mock := &utils.MockTransport{}

	p, err := NewPipeline(testWindowSize, testHistoryWidth, testSampleRate, mock)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.Start()

	// One full window plus a partial remainder.
	p.In() <- utils.GenerateSineWave(testWindowSize+188, testSampleRate, 440)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(mock.Frames) != 1 {
		t.Errorf("produced %d frames, want 1 (partial window discarded)", len(mock.Frames))
	}
}

func TestPipelineNilTransport(t *testing.T) {
	p, err := NewPipeline(testWindowSize, 8, testSampleRate, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.Start()

	p.In() <- utils.GenerateSineWave(testWindowSize, testSampleRate, 440)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	snapshot := p.History().Snapshot()
	nonZero := false
	for _, v := range snapshot[0] {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("newest frame is all zero after processing a tone")
	}
}

func TestPipelineRejectsBadParams(t *testing.T) {
	if _, err := NewPipeline(500, testHistoryWidth, testSampleRate, nil); err == nil {
		t.Error("expected error for non-power-of-2 window size")
	}
	if _, err := NewPipeline(testWindowSize, 0, testSampleRate, nil); err == nil {
		t.Error("expected error for zero history width")
	}
}
