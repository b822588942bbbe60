package state

import "sync"

// User states constants
const (
	None           = "none"
	WaitingForCity = "waiting_for_city"
)

// Manager tracks per-user dialog state. Implementations must be safe for
// concurrent use from the update loop.
type Manager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
}

// MemoryManager keeps states in process memory. State is lost on restart,
// which only means an in-flight registration has to be restarted.
type MemoryManager struct {
	userStates map[int64]string
	mu         sync.RWMutex
}

// NewMemoryManager creates a new in-memory state manager
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		userStates: make(map[int64]string),
	}
}

// SetUserState sets the state for a user
func (m *MemoryManager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *MemoryManager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *MemoryManager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}
