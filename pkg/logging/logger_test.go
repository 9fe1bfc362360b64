package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeEntry(t *testing.T, line []byte) LogEntry {
	t.Helper()
	var entry LogEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, line)
	}
	return entry
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("sector optimized", SectorID(3), SelectedCount(7))

	entry := decodeEntry(t, buf.Bytes())
	if entry.Level != "INFO" {
		t.Errorf("Level = %s, want INFO", entry.Level)
	}
	if entry.Message != "sector optimized" {
		t.Errorf("Message = %s", entry.Message)
	}
	if entry.Fields["sector_id"] != float64(3) {
		t.Errorf("sector_id = %v, want 3", entry.Fields["sector_id"])
	}
	if entry.Fields["selected_count"] != float64(7) {
		t.Errorf("selected_count = %v, want 7", entry.Fields["selected_count"])
	}
}

func TestJSONLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("partitioner"))
	child.Info("cells assigned", NodeCount(12))

	entry := decodeEntry(t, buf.Bytes())
	if entry.Fields["component"] != "partitioner" {
		t.Errorf("component = %v, want partitioner", entry.Fields["component"])
	}
	if entry.Fields["node_count"] != float64(12) {
		t.Errorf("node_count = %v, want 12", entry.Fields["node_count"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"nonsense", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestErrorField(t *testing.T) {
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil).Value = %v, want nil", f.Value)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "batch complete", SectorID(1))
	timer.End()

	entry := decodeEntry(t, buf.Bytes())
	if entry.Message != "batch complete" {
		t.Errorf("Message = %s", entry.Message)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("timed operation missing latency field")
	}
}
