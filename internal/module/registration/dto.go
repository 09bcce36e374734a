package registration

import "github.com/google/uuid"

// MemberPayload is one member in a registration request.
type MemberPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
}

// RegisterTeamRequest is a complete one-shot registration. Field checks are
// deliberately left to the validation rules rather than binding tags, so the
// caller gets the same first-violation message the draft workflow produces.
type RegisterTeamRequest struct {
	TeamName string          `json:"team_name"`
	Category string          `json:"category"`
	Members  []MemberPayload `json:"members"`
}

// ToDraft converts the request into a TeamDraft.
func (r *RegisterTeamRequest) ToDraft() *TeamDraft {
	draft := &TeamDraft{
		TeamName: r.TeamName,
		Category: r.Category,
		Members:  make([]MemberDraft, len(r.Members)),
	}
	for i, m := range r.Members {
		draft.Members[i] = MemberDraft{
			Name:    m.Name,
			Email:   m.Email,
			Phone:   m.Phone,
			College: m.College,
		}
	}
	return draft
}

// DraftResponse is a draft session's externally visible state.
type DraftResponse struct {
	ID        uuid.UUID  `json:"id"`
	State     State      `json:"state"`
	Draft     *TeamDraft `json:"draft"`
	LastError string     `json:"last_error,omitempty"`
}

// UpdateDraftRequest updates a draft's team-level fields.
type UpdateDraftRequest struct {
	TeamName *string `json:"team_name"`
	Category *string `json:"category"`
}

// EditMemberRequest updates one attribute of one draft member.
type EditMemberRequest struct {
	Field string `json:"field" binding:"required,oneof=name email phone college"`
	Value string `json:"value"`
}
