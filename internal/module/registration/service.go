package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nxzen/hackathon-server/internal/shared/metrics"
	"go.uber.org/zap"
)

// Service provides registration business logic: one-shot registrations and
// the draft session workflow share the same validate -> normalize -> create
// path, so every persisted team went through the same rules.
type Service struct {
	repo       Repository
	rules      Rules
	drafts     *Manager
	email      EmailSender
	logger     *zap.Logger
	metrics    *metrics.Metrics
	resetDelay time.Duration
}

// NewService creates a new registration service. email may be nil when
// confirmation emails are disabled.
func NewService(
	repo Repository,
	rules Rules,
	drafts *Manager,
	email EmailSender,
	logger *zap.Logger,
	m *metrics.Metrics,
	resetDelay time.Duration,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m != nil {
		drafts.OnChange(func(count int) {
			m.DraftSessionsActive.Set(float64(count))
		})
	}
	return &Service{
		repo:       repo,
		rules:      rules,
		drafts:     drafts,
		email:      email,
		logger:     logger,
		metrics:    m,
		resetDelay: resetDelay,
	}
}

// Rules returns the active validation rules.
func (s *Service) Rules() Rules {
	return s.rules
}

// Categories returns the closed category set.
func (s *Service) Categories() []Category {
	return s.rules.Categories.List()
}

// Register validates and persists a complete draft in one call.
func (s *Service) Register(ctx context.Context, draft *TeamDraft) (*Team, error) {
	if result := s.rules.Validate(draft); !result.Valid {
		s.recordRegistration(draft.Category, "rejected")
		return nil, &ValidationError{Field: result.Field, Message: result.Message}
	}

	team := draft.Normalize()
	if err := s.persist(ctx, team); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepository, err)
	}
	return team, nil
}

// persist is the single create path. It is also handed to draft workflows as
// their CreateFunc, so both surfaces share metrics and confirmation emails.
func (s *Service) persist(ctx context.Context, team *Team) error {
	if err := s.repo.Create(ctx, team); err != nil {
		s.recordRegistration(team.Category, "failed")
		s.logger.Error("create team failed",
			zap.String("team_name", team.TeamName),
			zap.Error(err),
		)
		return err
	}

	s.recordRegistration(team.Category, "accepted")
	s.logger.Info("team registered",
		zap.String("team_id", team.ID.String()),
		zap.String("team_name", team.TeamName),
		zap.String("category", team.Category),
		zap.Int("members", len(team.Members)),
	)

	s.sendConfirmations(team)
	return nil
}

// sendConfirmations mails every member in the background. Registration is
// already committed at this point; email failures are logged and counted,
// never surfaced to the registrant.
func (s *Service) sendConfirmations(team *Team) {
	if s.email == nil {
		s.recordConfirmation("skipped")
		return
	}

	members := make([]Member, len(team.Members))
	copy(members, team.Members)
	teamName := team.TeamName

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, m := range members {
			if err := s.email.SendConfirmation(ctx, m.Email, m.Name, teamName); err != nil {
				s.recordConfirmation("failed")
				continue
			}
			s.recordConfirmation("sent")
		}
	}()
}

func (s *Service) recordRegistration(category, status string) {
	if s.metrics != nil {
		s.metrics.RecordRegistration(category, status)
	}
}

func (s *Service) recordConfirmation(status string) {
	if s.metrics != nil {
		s.metrics.RecordConfirmation(status)
	}
}

// --- Draft sessions ---

// CreateDraft opens a new draft session and returns its ID and initial state.
func (s *Service) CreateDraft() (uuid.UUID, State, *TeamDraft) {
	workflow := NewWorkflow(s.rules, s.persist, s.resetDelay)
	id := s.drafts.Create(workflow)
	state, draft, _ := workflow.Snapshot()
	return id, state, draft
}

// Draft returns a draft session's current state.
func (s *Service) Draft(id uuid.UUID) (State, *TeamDraft, string, error) {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return "", nil, "", err
	}
	state, draft, lastError := workflow.Snapshot()
	return state, draft, lastError, nil
}

// AddDraftMember appends an empty member slot to a draft.
func (s *Service) AddDraftMember(id uuid.UUID) error {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return err
	}
	return workflow.AddMember()
}

// RemoveDraftMember removes the member at index from a draft.
func (s *Service) RemoveDraftMember(id uuid.UUID, index int) error {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return err
	}
	return workflow.RemoveMember(index)
}

// EditDraftMember updates one field of one member of a draft.
func (s *Service) EditDraftMember(id uuid.UUID, index int, field, value string) error {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return err
	}
	return workflow.EditField(index, field, value)
}

// UpdateDraft updates the draft's team-level fields.
func (s *Service) UpdateDraft(id uuid.UUID, teamName, category *string) error {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return err
	}
	if teamName != nil {
		if err := workflow.SetTeamName(*teamName); err != nil {
			return err
		}
	}
	if category != nil {
		if err := workflow.SetCategory(*category); err != nil {
			return err
		}
	}
	return nil
}

// SubmitDraft submits a draft session's current draft.
func (s *Service) SubmitDraft(ctx context.Context, id uuid.UUID) (*Team, error) {
	workflow, err := s.drafts.Get(id)
	if err != nil {
		return nil, err
	}

	team, err := workflow.Submit(ctx)
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			s.recordRegistration("", "rejected")
		}
		return nil, err
	}
	return team, nil
}
