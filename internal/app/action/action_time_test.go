package action

import (
	"context"
	"strings"
	"testing"

	"wayfarer/internal/domain/interaction"
)

func TestWaitAdvancesClock(t *testing.T) {
	k := newTestKit(t)
	e := k.engine()

	res := mustSucceed(t, e.Execute(context.Background(), req(interaction.TimeWait, "", nil)))
	if res.Data["time_spent"] != 10 || k.worldMinutes() != 10 {
		t.Fatalf("expected default wait, got %v", res.Data)
	}
	mustSucceed(t, e.Execute(context.Background(), req(interaction.TimeWait, "", map[string]any{interaction.ParamMinutes: 950})))

	res = mustSucceed(t, e.Execute(context.Background(), req(interaction.TimeCheck, "", nil)))
	if res.Data["phase"] != "night" || res.Data["day"] != 1 {
		t.Fatalf("expected first night, got %v", res.Data)
	}
}

func TestWaitRejectsOutOfRangeMinutes(t *testing.T) {
	k := newTestKit(t)
	e := k.engine()
	for _, m := range []any{0, -5, 1441} {
		res := mustFail(t, e.Execute(context.Background(), req(interaction.TimeWait, "", map[string]any{interaction.ParamMinutes: m})))
		if !strings.Contains(res.Message, "between 1 and 1440") {
			t.Fatalf("minutes=%v: unexpected message %q", m, res.Message)
		}
	}
	if k.worldMinutes() != 0 {
		t.Fatalf("clock must not move")
	}
}

func TestWaitReportsClockFailure(t *testing.T) {
	k := newTestKit(t)
	k.deps.Clock = failingClock{}
	res := mustFail(t, k.engine().Execute(context.Background(), req(interaction.TimeWait, "", nil)))
	if res.Message != "Time could not advance." {
		t.Fatalf("unexpected message %q", res.Message)
	}
}
