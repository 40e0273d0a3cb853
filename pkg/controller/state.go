package controller

import (
	"fmt"

	"github.com/neotica/restaurantreview/pkg/model"
)

// Phase is the tag of a SyncState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SyncState is the controller's current phase together with its payload:
// the restaurant for Loaded and the reason for Failed. The zero value is Idle.
type SyncState struct {
	phase      Phase
	restaurant model.Restaurant
	reason     string
}

// Idle is the state before the first request.
func Idle() SyncState { return SyncState{phase: PhaseIdle} }

// Loading is the state while a request is in flight.
func Loading() SyncState { return SyncState{phase: PhaseLoading} }

// Loaded holds the most recent successful server snapshot.
func Loaded(r model.Restaurant) SyncState {
	return SyncState{phase: PhaseLoaded, restaurant: r}
}

// Failed records why the last fetch failed.
func Failed(reason string) SyncState {
	return SyncState{phase: PhaseFailed, reason: reason}
}

// Phase returns the state's tag.
func (s SyncState) Phase() Phase { return s.phase }

// Restaurant returns the snapshot held by a Loaded state.
func (s SyncState) Restaurant() (model.Restaurant, bool) {
	if s.phase != PhaseLoaded {
		return model.Restaurant{}, false
	}
	return s.restaurant, true
}

// Reason returns the failure reason of a Failed state.
func (s SyncState) Reason() string { return s.reason }

func (s SyncState) String() string {
	switch s.phase {
	case PhaseLoaded:
		return fmt.Sprintf("loaded(%s, %d reviews)", s.restaurant.ID, len(s.restaurant.Reviews))
	case PhaseFailed:
		return fmt.Sprintf("failed(%s)", s.reason)
	default:
		return s.phase.String()
	}
}
