package world

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const runtimeHandleLen = 36

// ReferenceRecord binds a session-scoped runtime handle to the template it
// was spawned from.
type ReferenceRecord struct {
	RuntimeHandle string       `json:"runtime_handle"`
	TemplateKey   string       `json:"template_key"`
	SessionID     string       `json:"session_id"`
	Kind          TemplateKind `json:"kind"`
	CreatedAt     time.Time    `json:"created_at"`
}

// IsRuntimeHandle reports whether ref has the 36-char hyphenated UUID shape.
// Template keys are free-form strings and never take that shape.
func IsRuntimeHandle(ref string) bool {
	ref = strings.TrimSpace(ref)
	if len(ref) != runtimeHandleLen || strings.Count(ref, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(ref)
	return err == nil
}

func NewRuntimeHandle() string {
	return uuid.NewString()
}
