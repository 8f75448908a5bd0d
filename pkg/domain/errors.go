package domain

import "errors"

// ErrUnknownState is returned when a transition references a state that was never added.
var ErrUnknownState = errors.New("unknown state")

// ErrMultipleInitial is returned when a second initial state is declared.
var ErrMultipleInitial = errors.New("multiple initial states")

// ErrEmptyStateName is returned when a state is added without a name.
var ErrEmptyStateName = errors.New("state name is empty")

// ErrInvalidSymbol is returned when a label is neither one character nor an epsilon spelling.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrFrozen is returned when an Automaton is mutated after Freeze.
var ErrFrozen = errors.New("automaton is frozen")

// ErrDefinitionNotFound is returned by loaders when no definition exists for an ID.
var ErrDefinitionNotFound = errors.New("definition not found")
