package statemachine

import (
	"errors"
	"testing"
)

func TestProjectTransitionsAreFree(t *testing.T) {
	sm := NewProjectStateMachine()
	all := []ProjectStatus{ProjectStatusDraft, ProjectStatusPublished, ProjectStatusArchived}
	for _, from := range all {
		for _, to := range all {
			if !sm.CanTransition(from, to) {
				t.Errorf("expected %s -> %s to be allowed", from, to)
			}
		}
	}
}

func TestProjectTransitionPublishChange(t *testing.T) {
	sm := NewProjectStateMachine()
	cases := []struct {
		from, to ProjectStatus
		want     PublishChange
	}{
		{ProjectStatusDraft, ProjectStatusPublished, PublishOn},
		{ProjectStatusArchived, ProjectStatusPublished, PublishOn},
		{ProjectStatusPublished, ProjectStatusArchived, PublishOff},
		{ProjectStatusPublished, ProjectStatusDraft, PublishOff},
		{ProjectStatusPublished, ProjectStatusPublished, PublishUnchanged},
		{ProjectStatusDraft, ProjectStatusArchived, PublishUnchanged},
	}
	for _, c := range cases {
		got, err := sm.Transition(c.from, c.to, "p1")
		if err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", c.from, c.to, err)
		}
		if got != c.want {
			t.Errorf("%s -> %s: expected change %d, got %d", c.from, c.to, c.want, got)
		}
	}
}

func TestProjectTransitionUnknownStatus(t *testing.T) {
	sm := NewProjectStateMachine()
	_, err := sm.Transition(ProjectStatusDraft, ProjectStatus("LIVE"), "p1")
	var invalid *InvalidProjectStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidProjectStateTransitionError, got %v", err)
	}
	if invalid.To != "LIVE" {
		t.Fatalf("unexpected error payload: %+v", invalid)
	}
}
