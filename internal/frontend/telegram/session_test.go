package telegram

import (
	"testing"

	"github.com/moviedeck/moviedeck/internal/core"
)

func TestSessionManager_IsAllowed(t *testing.T) {
	t.Run("empty_allowlist_allows_all", func(t *testing.T) {
		sm := newSessionManager(nil)
		if !sm.isAllowed(42) {
			t.Error("expected all users allowed with empty allowlist")
		}
	})

	t.Run("allowlist_enforced", func(t *testing.T) {
		sm := newSessionManager([]int64{42, 99})
		if !sm.isAllowed(42) {
			t.Error("expected user 42 allowed")
		}
		if sm.isAllowed(7) {
			t.Error("expected user 7 denied")
		}
	})
}

func TestSessionManager_ListTracking(t *testing.T) {
	sm := newSessionManager(nil)

	if got := sm.currentList(1); got != core.ListPopular {
		t.Errorf("expected default list popular, got %q", got)
	}

	sm.rememberList(1, core.ListUpcoming)
	sm.rememberList(2, core.ListTopRated)

	if got := sm.currentList(1); got != core.ListUpcoming {
		t.Errorf("expected upcoming for chat 1, got %q", got)
	}
	if got := sm.currentList(2); got != core.ListTopRated {
		t.Errorf("expected top_rated for chat 2, got %q", got)
	}
}
