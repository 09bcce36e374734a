package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	teams []*Team
	err   error
}

func (r *memoryRepo) Create(ctx context.Context, team *Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.teams = append(r.teams, team)
	return nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.teams, nil
}

func (r *memoryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.teams)), nil
}

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, testRules(), NewManager(time.Hour, nil), nil, nil, nil, time.Second)
}

func TestService_Register(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestService(repo)

	team, err := s.Register(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "Grid Breakers", team.TeamName)
	assert.Len(t, repo.teams, 1)
}

func TestService_RegisterInvalidDraft(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestService(repo)

	draft := validDraft()
	draft.Category = ""

	_, err := s.Register(context.Background(), draft)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "category", verr.Field)
	assert.Empty(t, repo.teams)
}

func TestService_RegisterRepositoryError(t *testing.T) {
	repo := &memoryRepo{err: errors.New("down")}
	s := newTestService(repo)

	_, err := s.Register(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrRepository)
}

func TestService_RegisterNormalizes(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestService(repo)

	draft := validDraft()
	draft.TeamName = "  Grid Breakers  "
	draft.Members[0].Email = "  ASHA@Example.COM "

	team, err := s.Register(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Grid Breakers", team.TeamName)
	assert.Equal(t, "asha@example.com", team.Members[0].Email)
}

func TestService_DraftSessionLifecycle(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestService(repo)

	id, state, draft := s.CreateDraft()
	assert.Equal(t, StateEditing, state)
	require.Len(t, draft.Members, 1)

	name := "Grid Breakers"
	category := "web"
	require.NoError(t, s.UpdateDraft(id, &name, &category))
	require.NoError(t, s.EditDraftMember(id, 0, "name", "Asha Rao"))
	require.NoError(t, s.EditDraftMember(id, 0, "email", "asha@example.com"))
	require.NoError(t, s.EditDraftMember(id, 0, "phone", "9876543210"))
	require.NoError(t, s.EditDraftMember(id, 0, "college", "NIT Trichy"))

	require.NoError(t, s.AddDraftMember(id))
	require.NoError(t, s.RemoveDraftMember(id, 1))

	team, err := s.SubmitDraft(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Grid Breakers", team.TeamName)
	assert.Len(t, repo.teams, 1)

	state, _, _, err = s.Draft(id)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, state)
}

func TestService_DraftValidationErrorRecorded(t *testing.T) {
	s := newTestService(&memoryRepo{})

	id, _, _ := s.CreateDraft()
	_, err := s.SubmitDraft(context.Background(), id)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "team name", verr.Field)

	_, _, lastErr, err := s.Draft(id)
	require.NoError(t, err)
	assert.Equal(t, "please enter your team name", lastErr)
}

func TestService_DraftOpsOnUnknownSession(t *testing.T) {
	s := newTestService(&memoryRepo{})
	id, _, _ := s.CreateDraft()
	s.drafts.Remove(id)

	assert.ErrorIs(t, s.AddDraftMember(id), ErrDraftNotFound)
	assert.ErrorIs(t, s.EditDraftMember(id, 0, "name", "x"), ErrDraftNotFound)
	_, err := s.SubmitDraft(context.Background(), id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
