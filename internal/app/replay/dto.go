package replay

import "wayfarer/internal/domain/world"

// Request selects a session's events. OccurredFrom/OccurredTo are unix
// seconds; zero leaves that side open. EntityID narrows to one actor.
type Request struct {
	SessionID    string
	EntityID     string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Summary struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	ByAction  map[string]int `json:"by_action"`
}

type Response struct {
	Events  []world.DomainEvent `json:"events"`
	Summary Summary             `json:"summary"`
}
