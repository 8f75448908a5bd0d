package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventConflict EventType = "conflict"
	EventStep     EventType = "step"
	EventVerdict  EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// ConflictEvent reports a state with two distinct outgoing transitions sharing a symbol.
type ConflictEvent struct {
	EventBase
	Conflict Conflict `json:"conflict"`
}

// StepEvent reports the active state set after one input character.
type StepEvent struct {
	EventBase
	Index  int      `json:"index"`
	Symbol string   `json:"symbol"`
	Active []string `json:"active"`
}

// VerdictEvent reports the outcome of a word evaluation.
type VerdictEvent struct {
	EventBase
	Word     string       `json:"word"`
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	// Consumed is the number of characters read before the verdict.
	Consumed int `json:"consumed"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnConflict func(context.Context, *ConflictEvent)
	OnStep     func(context.Context, *StepEvent)
	OnVerdict  func(context.Context, *VerdictEvent)
}
