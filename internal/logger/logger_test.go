package logger

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func(string, ...any)
		verbose bool
		want    string
	}{
		{name: "debug verbose", log: Debug, verbose: true, want: "[DEBUG] matched All 18-44\n"},
		{name: "debug quiet", log: Debug, verbose: false, want: ""},
		{name: "info verbose", log: Info, verbose: true, want: "[INFO] matched All 18-44\n"},
		{name: "info quiet", log: Info, verbose: false, want: ""},
		{name: "warn verbose", log: Warn, verbose: true, want: "[WARN] matched All 18-44\n"},
		{name: "warn quiet", log: Warn, verbose: false, want: ""},
		{name: "error verbose", log: Error, verbose: true, want: "[ERROR] matched All 18-44\n"},
		{name: "error always printed", log: Error, verbose: false, want: "[ERROR] matched All 18-44\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetLogger()

			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(tt.verbose)

			tt.log("matched %s", "All 18-44")

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Net Reach Calculation")

	if got := buf.String(); got != "\n=== Net Reach Calculation ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer resetLogger()

	SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(n%2 == 0)
			_ = IsVerbose()
			Debug("step %d", n)
		}(i)
	}
	wg.Wait()
}
