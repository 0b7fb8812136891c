package ports

import "wayfarer/internal/domain/interaction"

type ActionMetrics interface {
	RecordSuccess(actionType interaction.ActionType)
	RecordFailure(actionType interaction.ActionType)
	RecordConflict()
}
