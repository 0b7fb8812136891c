package inmemory

import (
	"sync"

	"wayfarer/internal/domain/interaction"
)

type ActionCounts struct {
	Success uint64 `json:"success"`
	Failure uint64 `json:"failure"`
}

// Snapshot is the /ops/kpi body. Conflicts count object state retries and
// are not part of ActionTotal.
type Snapshot struct {
	ActionTotal    uint64                  `json:"action_total"`
	ActionSuccess  uint64                  `json:"action_success"`
	ActionFailure  uint64                  `json:"action_failure"`
	StateConflicts uint64                  `json:"state_conflicts"`
	ByActionType   map[string]ActionCounts `json:"by_action_type"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	failure  uint64
	conflict uint64
	byAction map[interaction.ActionType]ActionCounts
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[interaction.ActionType]ActionCounts{},
	}
}

func (r *Recorder) RecordSuccess(at interaction.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	c := r.byAction[at]
	c.Success++
	r.byAction[at] = c
}

func (r *Recorder) RecordFailure(at interaction.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	c := r.byAction[at]
	c.Failure++
	r.byAction[at] = c
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.failure,
		StateConflicts: r.conflict,
		ByActionType:   make(map[string]ActionCounts, len(r.byAction)),
	}
	for k, v := range r.byAction {
		out.ByActionType[string(k)] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
