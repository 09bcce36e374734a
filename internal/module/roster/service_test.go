package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nxzen/hackathon-server/internal/module/registration"
)

type fakeRepo struct {
	teams []*registration.Team
	err   error
	calls int
}

func (r *fakeRepo) Create(ctx context.Context, team *registration.Team) error {
	r.teams = append(r.teams, team)
	return nil
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]*registration.Team, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.teams, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.teams)), nil
}

func sampleTeams() []*registration.Team {
	return []*registration.Team{
		{
			TeamName:  "Grid Breakers",
			Category:  "web",
			CreatedAt: time.Date(2025, 11, 1, 10, 30, 0, 0, time.UTC),
			Members: []registration.Member{
				{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210", College: "NIT Trichy"},
				{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876500000", College: "IIT Madras"},
			},
		},
		{
			TeamName:  "Meter Minds",
			Category:  "ai-ml",
			CreatedAt: time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC),
			Members: []registration.Member{
				{Name: "Priya Singh", Email: "priya@example.com", Phone: "9876511111", College: "BITS Pilani"},
			},
		},
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, nil, zap.NewNop(), nil)
}

func TestService_Refresh(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)

	teams, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.Len(t, s.Teams(), 2)
}

func TestService_RefreshKeepsStaleSnapshotOnError(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	repo.err = errors.New("connection refused")
	_, err = s.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)

	// The dashboard still shows the last good snapshot.
	assert.Len(t, s.Teams(), 2)
}

func TestService_RefreshReplacesSnapshot(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	repo.teams = repo.teams[:1]
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Len(t, s.Teams(), 1)
}

func TestService_Filter(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"Grid Breakers", "Meter Minds"}},
		{"whitespace query returns all", "   ", []string{"Grid Breakers", "Meter Minds"}},
		{"team name substring", "grid", []string{"Grid Breakers"}},
		{"case-insensitive", "GRID", []string{"Grid Breakers"}},
		{"category", "ai-ml", []string{"Meter Minds"}},
		{"member name", "ravi", []string{"Grid Breakers"}},
		{"member email", "priya@", []string{"Meter Minds"}},
		{"college", "iit madras", []string{"Grid Breakers"}},
		{"matches across teams", "example.com", []string{"Grid Breakers", "Meter Minds"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.query)
			names := make([]string, 0, len(got))
			for _, team := range got {
				names = append(names, team.TeamName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestService_FilterIdempotent(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	first := s.Filter("grid")
	second := s.Filter("grid")
	assert.Equal(t, first, second)

	// Filtering never shrinks the underlying snapshot.
	assert.Len(t, s.Teams(), 2)
}

func TestService_Stats(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)

	assert.Equal(t, Stats{}, s.Stats())

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Teams: 2, Participants: 3}, s.Stats())
}

func TestService_Clear(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	s.Clear()
	assert.Empty(t, s.Teams())
	assert.Equal(t, Stats{}, s.Stats())
}
