package logger

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewBuildsBothEncodings(t *testing.T) {
	for _, dev := range []bool{false, true} {
		log, err := New("INFO", dev)
		if err != nil {
			t.Fatalf("build logger (dev=%v): %v", dev, err)
		}
		if log.Core().Enabled(-1) {
			t.Fatalf("debug must be disabled at info level (dev=%v)", dev)
		}
	}
}
