package status

type Request struct {
	SessionID string
	EntityID  string
}

// Response is a read-only view of where an entity stands in its session.
type Response struct {
	SessionID          string            `json:"session_id"`
	EntityID           string            `json:"entity_id"`
	WorldMinutes       int64             `json:"world_minutes"`
	Day                int               `json:"day"`
	TimeOfDay          string            `json:"time_of_day"`
	NextPhaseInMinutes int               `json:"next_phase_in_minutes"`
	CellID             string            `json:"cell_id,omitempty"`
	Equipment          map[string]string `json:"equipment"`
}
