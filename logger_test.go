package kbroker

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// testLogger implements the StdLogger interface and records the text in the
// logs of the given T passed from Test functions.
//
// nolint
type testLogger struct {
	t *testing.T
}

func (l *testLogger) Print(v ...interface{}) {
	if l.t != nil {
		l.t.Helper()
		l.t.Log(v...)
	}
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	if l.t != nil {
		l.t.Helper()
		l.t.Logf(format, v...)
	}
}

func (l *testLogger) Println(v ...interface{}) {
	if l.t != nil {
		l.t.Helper()
		l.t.Log(v...)
	}
}

// recordingLogger implements StdLogger and keeps every line so tests can
// assert on what the server reported.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Print(v ...interface{}) {
	l.add(fmt.Sprint(v...))
}

func (l *recordingLogger) Printf(format string, v ...interface{}) {
	l.add(fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Println(v ...interface{}) {
	l.add(fmt.Sprintln(v...))
}

func (l *recordingLogger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, strings.TrimSuffix(line, "\n"))
}

func (l *recordingLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// captureLogger swaps Logger for a recordingLogger until the test ends.
func captureLogger(t *testing.T) *recordingLogger {
	t.Helper()
	rec := &recordingLogger{}
	prev := Logger
	Logger = rec
	t.Cleanup(func() { Logger = prev })
	return rec
}
