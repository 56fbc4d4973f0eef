package telegram

import (
	"sync"

	"github.com/moviedeck/moviedeck/internal/core"
)

// sessionManager tracks access control and the last list each chat browsed,
// so selection callbacks and /refresh know what the chat is looking at.
type sessionManager struct {
	mu       sync.Mutex
	lastList map[int64]core.ListType
	allowed  map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		lastList: make(map[int64]core.ListType),
		allowed:  allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// rememberList records the list a chat last browsed.
func (sm *sessionManager) rememberList(chatID int64, list core.ListType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.lastList[chatID] = list
}

// currentList returns the list a chat last browsed, defaulting to popular.
func (sm *sessionManager) currentList(chatID int64) core.ListType {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if list, ok := sm.lastList[chatID]; ok {
		return list
	}
	return core.ListPopular
}
