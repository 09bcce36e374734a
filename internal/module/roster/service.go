package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nxzen/hackathon-server/internal/module/registration"
	"github.com/nxzen/hackathon-server/internal/shared/metrics"
)

// Stats summarizes the cached roster.
type Stats struct {
	Teams        int `json:"teams"`
	Participants int `json:"participants"`
}

// Service maintains an in-memory snapshot of registered teams for the
// admin dashboard. The snapshot is refreshed explicitly; reads never
// touch the database.
type Service struct {
	repo     registration.Repository
	archiver Archiver
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	allTeams []*registration.Team
}

func NewService(repo registration.Repository, archiver Archiver, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		archiver: archiver,
		logger:   logger,
		metrics:  m,
	}
}

// Refresh replaces the cached snapshot with the current database
// contents. On failure the previous snapshot is kept so the dashboard
// degrades to stale data instead of going blank. Concurrent refreshes
// are safe; the last one to complete wins.
func (s *Service) Refresh(ctx context.Context) ([]*registration.Team, error) {
	teams, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("roster refresh failed", zap.Error(err))
		if s.metrics != nil {
			s.metrics.RecordRosterRefresh("error")
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	s.mu.Lock()
	s.allTeams = teams
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordRosterRefresh("ok")
		s.metrics.RegisteredTeams.Set(float64(len(teams)))
	}
	s.logger.Info("roster refreshed", zap.Int("teams", len(teams)))
	return teams, nil
}

// Teams returns the cached snapshot.
func (s *Service) Teams() []*registration.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*registration.Team, len(s.allTeams))
	copy(out, s.allTeams)
	return out
}

// Filter returns the cached teams matching query. An empty query
// matches everything. Matching is case-insensitive substring search
// across team name, category, and every member's name, email, and
// college; a team is included when any single field matches.
func (s *Service) Filter(query string) []*registration.Team {
	teams := s.Teams()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return teams
	}

	matched := make([]*registration.Team, 0, len(teams))
	for _, t := range teams {
		if matchesTeam(t, q) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matchesTeam(t *registration.Team, q string) bool {
	if strings.Contains(strings.ToLower(t.TeamName), q) ||
		strings.Contains(strings.ToLower(t.Category), q) {
		return true
	}
	for _, m := range t.Members {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.College), q) {
			return true
		}
	}
	return false
}

// Stats reports team and participant counts over the cached snapshot.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Teams: len(s.allTeams)}
	for _, t := range s.allTeams {
		st.Participants += len(t.Members)
	}
	return st
}

// Clear drops the cached snapshot. Called when the last admin session
// closes so registration data does not linger in memory.
func (s *Service) Clear() {
	s.mu.Lock()
	s.allTeams = nil
	s.mu.Unlock()
	s.logger.Debug("roster cache cleared")
}
