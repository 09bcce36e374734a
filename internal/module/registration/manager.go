package registration

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// draftSession pairs a workflow with its last-touched time for idle expiry.
type draftSession struct {
	workflow *Workflow
	lastSeen time.Time
}

// Manager owns the live draft sessions. Each session is one Workflow keyed
// by a draft ID; sessions idle past the TTL are dropped by a background
// sweep. The sweep never touches a workflow mid-submit: a submitting session
// counts as active.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*draftSession

	ttl      time.Duration
	logger   *zap.Logger
	onChange func(count int)

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewManager creates a draft session manager.
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*draftSession),
		ttl:      ttl,
		logger:   logger.Named("draft-manager"),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the idle-session sweep.
func (m *Manager) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

// OnChange registers a callback invoked with the live session count
// whenever a session is created, removed, or swept.
func (m *Manager) OnChange(fn func(count int)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Manager) notifyLocked() {
	if m.onChange != nil {
		m.onChange(len(m.sessions))
	}
}

// Create registers a new workflow and returns its draft ID.
func (m *Manager) Create(workflow *Workflow) uuid.UUID {
	id := uuid.New()

	m.mu.Lock()
	m.sessions[id] = &draftSession{
		workflow: workflow,
		lastSeen: time.Now(),
	}
	m.notifyLocked()
	m.mu.Unlock()

	return id
}

// Get returns the workflow for a draft ID and marks the session active.
func (m *Manager) Get(id uuid.UUID) (*Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	session.lastSeen = time.Now()
	return session.workflow, nil
}

// Remove drops a draft session.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.notifyLocked()
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// sweep drops sessions idle past the TTL.
func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for id, session := range m.sessions {
		if session.lastSeen.After(cutoff) {
			continue
		}
		if state, _, _ := session.workflow.Snapshot(); state == StateSubmitting {
			continue
		}
		delete(m.sessions, id)
		expired++
		m.logger.Debug("expired idle draft session", zap.String("draft_id", id.String()))
	}
	if expired > 0 {
		m.notifyLocked()
	}
}
