package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[string]*AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*AdminUser)}
}

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*AdminUser, error) {
	admin, ok := r.admins[email]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *AdminUser) error {
	r.admins[admin.Email] = admin
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeAdminRepo) {
	t.Helper()
	repo := newFakeAdminRepo()
	svc := NewService(repo, NewJWTManager(testJWTConfig()), nil, zap.NewNop(), nil)
	return svc, repo
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.admins[email] = &AdminUser{Email: email, PasswordHash: string(hash)}
}

func TestService_SignIn(t *testing.T) {
	svc, repo := newTestService(t)
	seedAdmin(t, repo, "admin@nxzen.com", "correct horse")

	t.Run("valid credentials", func(t *testing.T) {
		token, session, err := svc.SignIn(context.Background(), "admin@nxzen.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "admin@nxzen.com", session.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), "admin@nxzen.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), "nobody@nxzen.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_CurrentSession(t *testing.T) {
	svc, repo := newTestService(t)
	seedAdmin(t, repo, "admin@nxzen.com", "pw")

	token, _, err := svc.SignIn(context.Background(), "admin@nxzen.com", "pw")
	require.NoError(t, err)

	session, err := svc.CurrentSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@nxzen.com", session.Email)

	_, err = svc.CurrentSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_SignOutUnknownTokenIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	assert.NoError(t, svc.SignOut(context.Background(), "garbage"))
}

func TestService_SessionTransitions(t *testing.T) {
	svc, repo := newTestService(t)
	seedAdmin(t, repo, "admin@nxzen.com", "pw")
	seedAdmin(t, repo, "second@nxzen.com", "pw")

	var events []Event
	unsubscribe := svc.Subscribe(func(ev Event) {
		events = append(events, ev)
	})
	defer unsubscribe()

	// First sign-in fires the opened transition.
	token1, _, err := svc.SignIn(context.Background(), "admin@nxzen.com", "pw")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, SessionOpened, events[0].Type)
	assert.Equal(t, 1, events[0].Active)

	// A second concurrent session is not a transition.
	token2, _, err := svc.SignIn(context.Background(), "second@nxzen.com", "pw")
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 2, svc.ActiveSessions())

	// Closing one of two sessions is not a transition either.
	require.NoError(t, svc.SignOut(context.Background(), token1))
	assert.Len(t, events, 1)

	// Closing the last session fires the closed transition.
	require.NoError(t, svc.SignOut(context.Background(), token2))
	require.Len(t, events, 2)
	assert.Equal(t, SessionClosed, events[1].Type)
	assert.Equal(t, 0, events[1].Active)
	assert.Equal(t, 0, svc.ActiveSessions())
}

func TestService_Unsubscribe(t *testing.T) {
	svc, repo := newTestService(t)
	seedAdmin(t, repo, "admin@nxzen.com", "pw")

	calls := 0
	unsubscribe := svc.Subscribe(func(Event) { calls++ })
	unsubscribe()

	_, _, err := svc.SignIn(context.Background(), "admin@nxzen.com", "pw")
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestService_EnsureSeedAdmin(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, svc.EnsureSeedAdmin(context.Background(), "admin@nxzen.com", "bootstrap-pw"))
	require.Contains(t, repo.admins, "admin@nxzen.com")

	// Sign-in with the seeded credentials works.
	_, _, err := svc.SignIn(context.Background(), "admin@nxzen.com", "bootstrap-pw")
	assert.NoError(t, err)

	// Idempotent: a second call does not replace the account.
	created := repo.admins["admin@nxzen.com"]
	require.NoError(t, svc.EnsureSeedAdmin(context.Background(), "admin@nxzen.com", "other-pw"))
	assert.Same(t, created, repo.admins["admin@nxzen.com"])
}

func TestService_EnsureSeedAdminSkippedWithoutCredentials(t *testing.T) {
	svc, repo := newTestService(t)
	require.NoError(t, svc.EnsureSeedAdmin(context.Background(), "", ""))
	assert.Empty(t, repo.admins)
}
