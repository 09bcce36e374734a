package registration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nxzen/hackathon-server/internal/shared/config"
)

func testRules() Rules {
	return Rules{
		MinMembers: 1,
		MaxMembers: 2,
		Categories: NewCategorySet([]config.CategoryConfig{
			{ID: "web", Label: "Web Development"},
			{ID: "ai-ml", Label: "AI & Machine Learning"},
		}),
	}
}

func validDraft() *TeamDraft {
	return &TeamDraft{
		TeamName: "Grid Breakers",
		Category: "web",
		Members: []MemberDraft{
			{
				Name:    "Asha Rao",
				Email:   "asha@example.com",
				Phone:   "9876543210",
				College: "NIT Trichy",
			},
		},
	}
}

func TestValidate_ValidDraft(t *testing.T) {
	result := testRules().Validate(validDraft())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Field)
	assert.Empty(t, result.Message)
}

func TestValidate_FirstViolationWins(t *testing.T) {
	// Every field is broken; only the team name violation is reported.
	draft := &TeamDraft{
		TeamName: "   ",
		Category: "nope",
		Members:  []MemberDraft{{}},
	}

	result := testRules().Validate(draft)
	assert.False(t, result.Valid)
	assert.Equal(t, "team name", result.Field)
	assert.Equal(t, "please enter your team name", result.Message)
}

func TestValidate_FieldOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*TeamDraft)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing team name",
			mutate:    func(d *TeamDraft) { d.TeamName = "" },
			wantField: "team name",
			wantMsg:   "please enter your team name",
		},
		{
			name:      "missing category",
			mutate:    func(d *TeamDraft) { d.Category = "  " },
			wantField: "category",
			wantMsg:   "please choose a category",
		},
		{
			name:      "unknown category",
			mutate:    func(d *TeamDraft) { d.Category = "quantum" },
			wantField: "category",
			wantMsg:   `unknown category "quantum"`,
		},
		{
			name:      "missing member name",
			mutate:    func(d *TeamDraft) { d.Members[0].Name = "" },
			wantField: "member name",
			wantMsg:   "please enter a name for member 1",
		},
		{
			name:      "missing member email",
			mutate:    func(d *TeamDraft) { d.Members[0].Email = "" },
			wantField: "member email",
			wantMsg:   "please enter an email address for member 1",
		},
		{
			name:      "malformed member email",
			mutate:    func(d *TeamDraft) { d.Members[0].Email = "not-an-email" },
			wantField: "member email",
			wantMsg:   "please enter a valid email address for member 1",
		},
		{
			name:      "missing member phone",
			mutate:    func(d *TeamDraft) { d.Members[0].Phone = "" },
			wantField: "member phone",
			wantMsg:   "please enter a phone number for member 1",
		},
		{
			name:      "missing member college",
			mutate:    func(d *TeamDraft) { d.Members[0].College = "" },
			wantField: "member college",
			wantMsg:   "please enter a college name for member 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			result := testRules().Validate(draft)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantField, result.Field)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestValidate_EmailFormats(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"asha@example.com", true},
		{"a.b+c@sub.domain.org", true},
		{"ASHA@EXAMPLE.COM", true},
		{"asha@example", false},
		{"asha@@example.com", false},
		{"asha example@test.com", false},
		{"@example.com", false},
		{"asha@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			draft := validDraft()
			draft.Members[0].Email = tt.email

			result := testRules().Validate(draft)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, "member email", result.Field)
			}
		})
	}
}

func TestValidate_SecondMemberReported(t *testing.T) {
	draft := validDraft()
	draft.Members = append(draft.Members, MemberDraft{
		Name:    "Ravi Kumar",
		Email:   "bad",
		Phone:   "9876500000",
		College: "IIT Madras",
	})

	result := testRules().Validate(draft)
	assert.False(t, result.Valid)
	assert.Equal(t, "member email", result.Field)
	assert.Equal(t, "please enter a valid email address for member 2", result.Message)
}

func TestValidate_MemberCountBounds(t *testing.T) {
	t.Run("too many members", func(t *testing.T) {
		draft := validDraft()
		for i := 0; i < 2; i++ {
			draft.Members = append(draft.Members, MemberDraft{
				Name:    fmt.Sprintf("Member %d", i+2),
				Email:   fmt.Sprintf("m%d@example.com", i+2),
				Phone:   "9876543210",
				College: "NIT Trichy",
			})
		}

		result := testRules().Validate(draft)
		assert.False(t, result.Valid)
		assert.Equal(t, "member count", result.Field)
		assert.Equal(t, "teams must have between 1 and 2 members", result.Message)
	})

	t.Run("too few members", func(t *testing.T) {
		rules := testRules()
		rules.MinMembers = 2

		result := rules.Validate(validDraft())
		assert.False(t, result.Valid)
		assert.Equal(t, "member count", result.Field)
	})
}

func TestValidate_DoesNotModifyDraft(t *testing.T) {
	draft := validDraft()
	draft.TeamName = "  Grid Breakers  "
	draft.Members[0].Email = "ASHA@Example.COM"

	testRules().Validate(draft)

	assert.Equal(t, "  Grid Breakers  ", draft.TeamName)
	assert.Equal(t, "ASHA@Example.COM", draft.Members[0].Email)
}

func TestValidate_Deterministic(t *testing.T) {
	draft := validDraft()
	draft.Members[0].Phone = ""

	rules := testRules()
	first := rules.Validate(draft)
	second := rules.Validate(draft)
	assert.Equal(t, first, second)
}
