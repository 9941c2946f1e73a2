package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCompiled      EventType = "compiled"
	EventCompileFailed EventType = "compile_failed"
)

// CompileEvent describes one compilation.
type CompileEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Type       EventType     `json:"type"`
	Machine    string        `json:"machine,omitempty"`
	States     int           `json:"states"`
	TapeLength int           `json:"tape_length"`
	Slots      int           `json:"slots,omitempty"`
	Rules      int           `json:"rules,omitempty"`
	Bytes      int           `json:"bytes,omitempty"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for compiler observability.
type LifecycleHooks struct {
	OnCompile func(context.Context, *CompileEvent)
}
