package session

import "errors"

var (
	// ErrNoEncounter is returned when answering without an active encounter.
	ErrNoEncounter = errors.New("no encounter in progress")

	// ErrEncounterActive is returned when an operation needs the session to
	// be between encounters.
	ErrEncounterActive = errors.New("an encounter is already in progress")

	// ErrNodeLocked is returned when starting a node that is not available.
	ErrNodeLocked = errors.New("node is not available")

	// ErrUnknownNode is returned for node ids absent from the node bank.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNoQuestions is returned when no question could be drawn for a node.
	ErrNoQuestions = errors.New("no questions available for node")
)
