// Package selection collects the stations an operator wants to compare.
//
// The rules live in a pure state machine, [Session.Next], so they can be
// exercised without a console. [Console] drives a Session from line-oriented
// input.
package selection

import (
	"slices"
	"strings"

	"github.com/couchcryptid/tube-commuters/internal/domain"
)

// MaxStations caps a manual selection.
const MaxStations = 5

// Control commands accepted in place of a station name.
const (
	CommandDone    = "done"
	CommandBusiest = "busiest 5"
)

// State is the phase of a selection session.
type State int

const (
	Collecting State = iota
	Done
	Ranked
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Done:
		return "done"
	case Ranked:
		return "ranked"
	default:
		return "unknown"
	}
}

// Effect is what one input did to the session.
type Effect int

const (
	EffectIgnored Effect = iota
	EffectAccepted
	EffectUnknown
	EffectDuplicate
	EffectDone
	EffectBusiest
)

func (e Effect) String() string {
	switch e {
	case EffectAccepted:
		return "accepted"
	case EffectUnknown:
		return "unknown"
	case EffectDuplicate:
		return "duplicate"
	case EffectDone:
		return "done"
	case EffectBusiest:
		return "busiest"
	default:
		return "ignored"
	}
}

// Session is an immutable snapshot of a manual selection in progress.
type Session struct {
	state State
	picks []string
}

// NewSession starts collecting.
func NewSession() Session {
	return Session{state: Collecting}
}

// State reports the current phase.
func (s Session) State() State { return s.state }

// Picks returns the accepted station names in entry order, title-cased.
func (s Session) Picks() []string { return slices.Clone(s.picks) }

// Finished reports whether the session accepts no further input.
func (s Session) Finished() bool { return s.state != Collecting }

// Ranked reports whether the caller should fall back to the busiest
// stations: either requested explicitly or finished with nothing picked.
func (s Session) Ranked() bool {
	return s.state == Ranked || (s.state == Done && len(s.picks) == 0)
}

// Next applies one line of input and returns the new session with the
// effect it had. The receiver is not modified.
func (s Session) Next(input string, c *domain.Catalog) (Session, Effect) {
	if s.Finished() {
		return s, EffectIgnored
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case CommandBusiest:
		return Session{state: Ranked}, EffectBusiest
	case CommandDone:
		return Session{state: Done, picks: s.picks}, EffectDone
	}

	if !c.Contains(input) {
		return s, EffectUnknown
	}
	name := domain.Canonical(input)
	if slices.Contains(s.picks, name) {
		return s, EffectDuplicate
	}

	next := Session{state: Collecting, picks: append(slices.Clip(s.picks), name)}
	if len(next.picks) >= MaxStations {
		next.state = Done
	}
	return next, EffectAccepted
}
