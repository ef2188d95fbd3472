package logging

import "testing"

func TestInit(t *testing.T) {
	for _, debug := range []bool{false, true} {
		if err := Init(debug); err != nil {
			t.Fatalf("Init(%v) error: %v", debug, err)
		}
		if L() == nil {
			t.Fatal("L() returned nil")
		}
	}
	Sync()
}

func TestLoggerUsableBeforeInit(t *testing.T) {
	// The no-op logger must absorb calls without panicking.
	L().Debugw("before init", "k", "v")
}
