package core

import (
	"testing"
	"time"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{" INFO ", InfoLevel, false},
		{"Warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLogLevel(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLogLevel(%q) should fail", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	prev := GetLogLevel()
	defer SetLogLevel(prev)

	SetLogLevel(ErrorLevel)
	if GetLogLevel() != ErrorLevel {
		t.Errorf("GetLogLevel = %v, want error", GetLogLevel())
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatal("a clock that was never started must not advance")
	}

	c.Start()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	if c.Elapsed() < 2*time.Millisecond {
		t.Errorf("Elapsed = %v, want at least 2ms", c.Elapsed())
	}

	c.Stop()
	stopped := c.Elapsed()
	c.Update()
	if c.IsRunning() || c.Elapsed() != stopped {
		t.Error("Stop should freeze the elapsed time")
	}
}

func TestFrameCounterAverage(t *testing.T) {
	fc := NewFrameCounter()
	if fc.Average() != 0 {
		t.Fatal("empty counter should average to zero")
	}

	for i := 0; i < FrameSampleCount; i++ {
		fc.Update(10 * time.Millisecond)
	}
	if got := fc.Average(); got != 10*time.Millisecond {
		t.Errorf("Average = %v, want 10ms", got)
	}

	// older samples roll out of the window
	for i := 0; i < FrameSampleCount; i++ {
		fc.Update(20 * time.Millisecond)
	}
	if got := fc.Average(); got != 20*time.Millisecond {
		t.Errorf("Average after rollover = %v, want 20ms", got)
	}
	if fc.Frames() != 2*FrameSampleCount {
		t.Errorf("Frames = %d, want %d", fc.Frames(), 2*FrameSampleCount)
	}
}

func TestFrameCounterFPS(t *testing.T) {
	fc := NewFrameCounter()
	for i := 0; i < 50; i++ {
		fc.Update(20 * time.Millisecond)
	}
	if got := fc.FPS(); got < 49.9 || got > 50.1 {
		t.Errorf("FPS = %v, want 50", got)
	}

	fc.Reset()
	if fc.FPS() != 0 || fc.Frames() != 0 {
		t.Error("Reset should clear the counters")
	}
}
