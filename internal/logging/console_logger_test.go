package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

// Compile-time interface checks.
var (
	_ rodooddb.Logger = (*ConsoleLogger)(nil)
	_ rodooddb.Logger = (*NullLogger)(nil)
)

func TestConsoleLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	l.Info("probing %s", "localhost:5432")

	got := buf.String()
	if got != "probing localhost:5432\n" {
		t.Errorf("Info output = %q", got)
	}
}

func TestConsoleLogger_VerboseSuppressed(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	l.Verbose("attempt %d", 1)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestConsoleLogger_VerboseEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, true)

	l.Verbose("attempt %d", 1)

	if got := buf.String(); got != "[VERBOSE] attempt 1\n" {
		t.Errorf("Verbose output = %q", got)
	}
}

func TestConsoleLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	l.Error("connection refused")

	if got := buf.String(); got != "[ERROR] connection refused\n" {
		t.Errorf("Error output = %q", got)
	}
}

func TestConsoleLogger_NoArgsPercentLiteral(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	// Messages containing % must not be reinterpreted when no args are given.
	l.Info("disk 100% full")

	if got := buf.String(); got != "disk 100% full\n" {
		t.Errorf("Info output = %q", got)
	}
}

func TestConsoleLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Info("line %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
}

func TestNullLogger_Discards(t *testing.T) {
	l := NewNullLogger()
	// Must not panic or emit anything.
	l.Verbose("v %d", 1)
	l.Info("i")
	l.Error("e")
}
