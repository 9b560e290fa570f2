package payroll

import "testing"

func TestRunStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to RunStatus
		want     bool
	}{
		{RunStatusDraft, RunStatusFinalized, true},
		{RunStatusDraft, RunStatusCancelled, true},
		{RunStatusDraft, RunStatusPaid, false},
		{RunStatusFinalized, RunStatusPaid, true},
		{RunStatusFinalized, RunStatusDraft, false},
		{RunStatusFinalized, RunStatusCancelled, false},
		{RunStatusPaid, RunStatusDraft, false},
		{RunStatusPaid, RunStatusCancelled, false},
		{RunStatusCancelled, RunStatusDraft, false},
		{RunStatusCancelled, RunStatusFinalized, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestRunStatusLocked(t *testing.T) {
	if RunStatusDraft.Locked() || RunStatusCancelled.Locked() {
		t.Error("draft and cancelled runs are not locked")
	}
	if !RunStatusFinalized.Locked() || !RunStatusPaid.Locked() {
		t.Error("finalized and paid runs are locked")
	}
}
