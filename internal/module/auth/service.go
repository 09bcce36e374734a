package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nxzen/hackathon-server/internal/shared/metrics"
)

const denylistPrefix = "auth:denylist:"

// Service authenticates admins and tracks live sessions. Session
// transitions (first open, last close) are broadcast to subscribers so
// other modules can react without the auth package knowing about them.
type Service struct {
	repo    Repository
	jwt     *JWTManager
	redis   redis.UniversalClient
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	active    map[string]time.Time
	observers map[int]func(Event)
	nextObs   int

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewService(repo Repository, jwt *JWTManager, rdb redis.UniversalClient, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		jwt:       jwt,
		redis:     rdb,
		logger:    logger,
		metrics:   m,
		active:    make(map[string]time.Time),
		observers: make(map[int]func(Event)),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the session expiry sweeper.
func (s *Service) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.pruneExpired()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for it to exit.
func (s *Service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// EnsureSeedAdmin creates the bootstrap admin account when it does not
// exist yet. Called once at startup with credentials from config.
func (s *Service) EnsureSeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	if err := s.repo.Create(ctx, &AdminUser{Email: email, PasswordHash: string(hash)}); err != nil {
		return err
	}
	s.logger.Info("seed admin created", zap.String("email", email))
	return nil
}

// SignIn verifies credentials and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *Session, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			s.recordEvent("sign_in_failed")
			// Same error as a bad password so callers cannot probe
			// which emails exist.
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.recordEvent("sign_in_failed")
		return "", nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwt.Generate(admin)
	if err != nil {
		return "", nil, err
	}

	session := &Session{
		TokenID:   claims.ID,
		AdminID:   admin.ID,
		Email:     admin.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	s.trackOpen(session)
	s.recordEvent("sign_in")
	s.logger.Info("admin signed in", zap.String("email", admin.Email))
	return token, session, nil
}

// SignOut revokes the session token. Revocation is recorded in redis
// until the token would have expired anyway, so it holds across
// instances and restarts. Signing out an unknown or already-revoked
// token is a no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 && s.redis != nil {
		if err := s.redis.Set(ctx, denylistPrefix+claims.ID, "1", ttl).Err(); err != nil {
			s.logger.Warn("session denylist write failed", zap.Error(err))
		}
	}

	s.trackClose(claims.ID)
	s.recordEvent("sign_out")
	s.logger.Info("admin signed out", zap.String("email", claims.Email))
	return nil
}

// CurrentSession validates a token and returns the session it carries.
func (s *Service) CurrentSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		n, err := s.redis.Exists(ctx, denylistPrefix+claims.ID).Result()
		if err != nil {
			s.logger.Warn("session denylist check failed", zap.Error(err))
		} else if n > 0 {
			return nil, ErrRevokedToken
		}
	}

	return &Session{
		TokenID:   claims.ID,
		AdminID:   claims.AdminID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Subscribe registers an observer for session transitions and returns
// an unsubscribe function.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// ActiveSessions returns the number of tracked live sessions.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *Service) trackOpen(session *Session) {
	s.mu.Lock()
	s.active[session.TokenID] = session.ExpiresAt
	count := len(s.active)
	var fns []func(Event)
	if count == 1 {
		fns = s.observerList()
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(count))
	}
	s.notify(fns, Event{Type: SessionOpened, Active: count})
}

func (s *Service) trackClose(tokenID string) {
	s.mu.Lock()
	_, known := s.active[tokenID]
	delete(s.active, tokenID)
	count := len(s.active)
	var fns []func(Event)
	if known && count == 0 {
		fns = s.observerList()
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(count))
	}
	s.notify(fns, Event{Type: SessionClosed, Active: count})
}

func (s *Service) pruneExpired() {
	now := time.Now()
	s.mu.Lock()
	had := len(s.active)
	for id, exp := range s.active {
		if now.After(exp) {
			delete(s.active, id)
		}
	}
	count := len(s.active)
	var fns []func(Event)
	if had > 0 && count == 0 {
		fns = s.observerList()
	}
	s.mu.Unlock()

	if count != had {
		if s.metrics != nil {
			s.metrics.ActiveSessions.Set(float64(count))
		}
		s.logger.Debug("expired sessions pruned", zap.Int("removed", had-count))
	}
	s.notify(fns, Event{Type: SessionClosed, Active: count})
}

// observerList snapshots observers; caller must hold s.mu.
func (s *Service) observerList() []func(Event) {
	fns := make([]func(Event), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	return fns
}

// notify runs outside the service lock so observers may call back in.
func (s *Service) notify(fns []func(Event), ev Event) {
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Service) recordEvent(event string) {
	if s.metrics != nil {
		s.metrics.RecordAuthEvent(event)
	}
}
