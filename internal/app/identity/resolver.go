package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

var ErrInvalidReference = errors.New("invalid reference")

// Resolved is the confirmed pair for a reference. Both fields are empty when
// a runtime handle has no record in the session.
type Resolved struct {
	RuntimeHandle string
	TemplateKey   string
}

func (r Resolved) Empty() bool {
	return r.RuntimeHandle == "" && r.TemplateKey == ""
}

func (r Resolved) ObjectKey(sessionID string) world.ObjectKey {
	return world.ObjectKey{RuntimeHandle: r.RuntimeHandle, TemplateKey: r.TemplateKey, SessionID: sessionID}
}

type Resolver struct {
	Refs ports.ReferenceRepository
}

// Resolve maps ref to (runtime handle, template key). UUID-shaped refs are
// looked up in the session; anything else is taken as a template key.
func (r Resolver) Resolve(ctx context.Context, ref, sessionID string) (Resolved, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Resolved{}, ErrInvalidReference
	}
	if !world.IsRuntimeHandle(ref) {
		return Resolved{TemplateKey: ref}, nil
	}
	if r.Refs == nil {
		return Resolved{}, nil
	}
	rec, err := r.Refs.Get(ctx, ref, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Resolved{}, nil
		}
		return Resolved{}, err
	}
	return Resolved{RuntimeHandle: rec.RuntimeHandle, TemplateKey: rec.TemplateKey}, nil
}

type Spawner struct {
	Refs  ports.ReferenceRepository
	TxMgr ports.TxManager
	Now   func() time.Time
}

// Spawn binds a fresh runtime handle to templateKey inside the session.
func (s Spawner) Spawn(ctx context.Context, sessionID string, kind world.TemplateKind, templateKey string) (world.ReferenceRecord, error) {
	sessionID = strings.TrimSpace(sessionID)
	templateKey = strings.TrimSpace(templateKey)
	if sessionID == "" || templateKey == "" {
		return world.ReferenceRecord{}, ErrInvalidReference
	}
	if world.IsRuntimeHandle(templateKey) {
		return world.ReferenceRecord{}, ErrInvalidReference
	}
	nowFn := s.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	rec := world.ReferenceRecord{
		RuntimeHandle: world.NewRuntimeHandle(),
		TemplateKey:   templateKey,
		SessionID:     sessionID,
		Kind:          kind,
		CreatedAt:     nowFn().UTC(),
	}
	create := func(ctx context.Context) error {
		return s.Refs.Create(ctx, rec)
	}
	var err error
	if s.TxMgr != nil {
		err = s.TxMgr.RunInTx(ctx, create)
	} else {
		err = create(ctx)
	}
	if err != nil {
		return world.ReferenceRecord{}, err
	}
	return rec, nil
}
