package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common pipeline field names
func Component(name string) Field {
	return String("component", name)
}

func SectorID(id int) Field {
	return Int("sector_id", id)
}

func Profile(p string) Field {
	return String("profile", p)
}

func NodeCount(n int) Field {
	return Int("node_count", n)
}

func SelectedCount(n int) Field {
	return Int("selected_count", n)
}

func DroppedNodes(n int) Field {
	return Int("dropped_nodes", n)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Path(p string) Field {
	return String("path", p)
}
