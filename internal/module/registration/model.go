package registration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nxzen/hackathon-server/internal/shared/config"
)

// Category is one selectable challenge category.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategorySet is the closed set of categories a team may register under.
type CategorySet struct {
	ordered []Category
	byID    map[string]Category
}

// NewCategorySet builds a CategorySet from configuration.
func NewCategorySet(cfgs []config.CategoryConfig) CategorySet {
	set := CategorySet{
		ordered: make([]Category, 0, len(cfgs)),
		byID:    make(map[string]Category, len(cfgs)),
	}
	for _, c := range cfgs {
		cat := Category{ID: c.ID, Label: c.Label}
		if _, dup := set.byID[cat.ID]; dup {
			continue
		}
		set.ordered = append(set.ordered, cat)
		set.byID[cat.ID] = cat
	}
	return set
}

// Contains reports whether id is a known category.
func (s CategorySet) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// List returns the categories in declaration order.
func (s CategorySet) List() []Category {
	out := make([]Category, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Member is one participant of a persisted team.
type Member struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Position int       `json:"-" gorm:"not null"`
	Name     string    `json:"name" gorm:"not null"`
	Email    string    `json:"email" gorm:"not null"`
	Phone    string    `json:"phone" gorm:"not null"`
	College  string    `json:"college" gorm:"not null"`
}

// TableName returns the database table name.
func (Member) TableName() string {
	return "team_members"
}

// Team is the immutable result of a successful registration. Teams are only
// ever created and listed; no update or delete path exists.
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamName  string    `json:"team_name" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Members []Member `json:"members" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// MemberDraft is one participant of an in-progress registration.
type MemberDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
}

// TeamDraft is an in-progress registration, owned by a single Workflow for
// the duration of one form session.
type TeamDraft struct {
	TeamName string        `json:"team_name"`
	Category string        `json:"category"`
	Members  []MemberDraft `json:"members"`
}

// NewTeamDraft creates a draft pre-filled with the minimum member slots.
func NewTeamDraft(memberCount int) *TeamDraft {
	if memberCount < 1 {
		memberCount = 1
	}
	return &TeamDraft{
		Members: make([]MemberDraft, memberCount),
	}
}

// Clone returns an independent copy of the draft.
func (d *TeamDraft) Clone() *TeamDraft {
	members := make([]MemberDraft, len(d.Members))
	copy(members, d.Members)
	return &TeamDraft{
		TeamName: d.TeamName,
		Category: d.Category,
		Members:  members,
	}
}

// Normalize converts the draft into a Team ready for persistence: all text
// fields trimmed, emails additionally lower-cased. The draft is not modified.
func (d *TeamDraft) Normalize() *Team {
	team := &Team{
		TeamName: strings.TrimSpace(d.TeamName),
		Category: strings.TrimSpace(d.Category),
		Members:  make([]Member, len(d.Members)),
	}
	for i, m := range d.Members {
		team.Members[i] = Member{
			Position: i,
			Name:     strings.TrimSpace(m.Name),
			Email:    strings.ToLower(strings.TrimSpace(m.Email)),
			Phone:    strings.TrimSpace(m.Phone),
			College:  strings.TrimSpace(m.College),
		}
	}
	return team
}
