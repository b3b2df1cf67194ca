package scan

import (
	"sync"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/google/uuid"
)

// ScanSession is the ephemeral state of one capture→commit cycle. It lives in
// memory only and is destroyed on cancel or commit. Candidates are all
// selected by default once detection delivers them.
type ScanSession struct {
	ID       uuid.UUID
	UserID   string
	ImageURL string

	mu         sync.Mutex
	status     string
	source     string
	candidates []domain.DetectionCandidate
	selected   map[string]bool
}

func newScanSession(userID string) *ScanSession {
	return &ScanSession{
		ID:       uuid.New(),
		UserID:   userID,
		status:   domain.ScanStatusAnalyzing,
		selected: make(map[string]bool),
	}
}

func (s *ScanSession) setResults(candidates []domain.DetectionCandidate, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidates = candidates
	s.source = source
	s.selected = make(map[string]bool, len(candidates))
	for _, c := range candidates {
		s.selected[c.Name] = true
	}
	if len(candidates) == 0 {
		s.status = domain.ScanStatusEmpty
		return
	}
	s.status = domain.ScanStatusReady
}

// Toggle flips one candidate's selection. Idempotent per name: toggling twice
// restores the original state, and a name never appears twice.
func (s *ScanSession) Toggle(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.ScanStatusAnalyzing {
		return domain.ErrScanNotReady
	}
	if _, ok := s.selected[name]; !ok {
		return domain.ErrUnknownCandidate
	}
	s.selected[name] = !s.selected[name]
	return nil
}

// Selected returns the chosen candidate names in candidate order.
func (s *ScanSession) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.candidates))
	for _, c := range s.candidates {
		if s.selected[c.Name] {
			names = append(names, c.Name)
		}
	}
	return names
}

// SelectedCandidates returns the full candidate records of the selection.
func (s *ScanSession) SelectedCandidates() []domain.DetectionCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DetectionCandidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if s.selected[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

func (s *ScanSession) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ScanSession) snapshot() domain.ScanSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]string, 0, len(s.candidates))
	for _, c := range s.candidates {
		if s.selected[c.Name] {
			selected = append(selected, c.Name)
		}
	}

	return domain.ScanSessionResponse{
		ScanID:     s.ID.String(),
		Status:     s.status,
		Source:     s.source,
		Candidates: s.candidates,
		Selected:   selected,
	}
}

// SessionManager enforces one active session per user and acts as the
// stale-response guard: a detection result arriving for a session that has
// been torn down is dropped on delivery.
type SessionManager struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*ScanSession
	byUser map[string]*ScanSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		byID:   make(map[uuid.UUID]*ScanSession),
		byUser: make(map[string]*ScanSession),
	}
}

// Begin opens a new session for the user. A session still analyzing blocks a
// new capture; a session already awaiting curation is discarded in favor of
// the new one.
func (m *SessionManager) Begin(userID string) (*ScanSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byUser[userID]; ok {
		if existing.Status() == domain.ScanStatusAnalyzing {
			return nil, domain.ErrScanInProgress
		}
		delete(m.byID, existing.ID)
	}

	session := newScanSession(userID)
	m.byID[session.ID] = session
	m.byUser[userID] = session
	return session, nil
}

func (m *SessionManager) Get(scanID uuid.UUID) (*ScanSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.byID[scanID]
	if !ok {
		return nil, domain.ErrScanNotFound
	}
	return session, nil
}

// Deliver hands detection results to a session if it still exists. Returns
// false when the session was torn down while the request was in flight.
func (m *SessionManager) Deliver(scanID uuid.UUID, candidates []domain.DetectionCandidate, source string) bool {
	m.mu.Lock()
	session, ok := m.byID[scanID]
	m.mu.Unlock()

	if !ok {
		return false
	}
	session.setResults(candidates, source)
	return true
}

// Close destroys a session (cancel or successful commit).
func (m *SessionManager) Close(scanID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.byID[scanID]
	if !ok {
		return
	}
	delete(m.byID, scanID)
	if current, ok := m.byUser[session.UserID]; ok && current.ID == scanID {
		delete(m.byUser, session.UserID)
	}
}
