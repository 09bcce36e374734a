package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for registration.
type Handler struct {
	service *Service
}

// NewHandler creates a new registration handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers public registration routes. limiter, when
// non-nil, throttles the registration endpoints; category listing stays
// unthrottled.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc) {
	r.GET("/categories", h.ListCategories)

	if limiter != nil {
		r.POST("/teams", limiter, h.RegisterTeam)
	} else {
		r.POST("/teams", h.RegisterTeam)
	}

	drafts := r.Group("/drafts")
	if limiter != nil {
		drafts.Use(limiter)
	}
	{
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PUT("/:id", h.UpdateDraft)
		drafts.POST("/:id/members", h.AddMember)
		drafts.PATCH("/:id/members/:index", h.EditMember)
		drafts.DELETE("/:id/members/:index", h.RemoveMember)
		drafts.POST("/:id/submit", h.SubmitDraft)
	}
}

// ListCategories returns the selectable categories.
//
//	@Summary		List categories
//	@Description	Get the closed set of challenge categories
//	@Tags			public
//	@Produce		json
//	@Success		200	{object}	map[string][]Category
//	@Router			/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.service.Categories()})
}

// RegisterTeam handles a complete one-shot registration.
//
//	@Summary		Register team
//	@Description	Validate and persist a complete team registration
//	@Tags			public
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterTeamRequest	true	"Team registration"
//	@Success		201		{object}	Team
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/teams [post]
func (h *Handler) RegisterTeam(c *gin.Context) {
	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.service.Register(c.Request.Context(), req.ToDraft())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// CreateDraft opens a new draft session.
//
//	@Summary		Create draft
//	@Description	Open a new registration draft session
//	@Tags			public
//	@Produce		json
//	@Success		201	{object}	DraftResponse
//	@Router			/drafts [post]
func (h *Handler) CreateDraft(c *gin.Context) {
	id, state, draft := h.service.CreateDraft()
	c.JSON(http.StatusCreated, DraftResponse{ID: id, State: state, Draft: draft})
}

// GetDraft returns a draft session's current state.
//
//	@Summary		Get draft
//	@Tags			public
//	@Produce		json
//	@Param			id	path		string	true	"Draft ID"
//	@Success		200	{object}	DraftResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/drafts/{id} [get]
func (h *Handler) GetDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	state, draft, lastError, err := h.service.Draft(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DraftResponse{ID: id, State: state, Draft: draft, LastError: lastError})
}

// UpdateDraft updates the draft's team name and category.
//
//	@Summary		Update draft
//	@Tags			public
//	@Accept			json
//	@Param			id		path	string				true	"Draft ID"
//	@Param			request	body	UpdateDraftRequest	true	"Fields to update"
//	@Success		200	{object}	DraftResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/drafts/{id} [put]
func (h *Handler) UpdateDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateDraft(id, req.TeamName, req.Category); err != nil {
		h.handleError(c, err)
		return
	}
	h.respondDraft(c, id)
}

// AddMember appends an empty member slot to the draft.
//
//	@Summary		Add draft member
//	@Tags			public
//	@Param			id	path		string	true	"Draft ID"
//	@Success		200	{object}	DraftResponse
//	@Failure		409	{object}	map[string]string
//	@Router			/drafts/{id}/members [post]
func (h *Handler) AddMember(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	if err := h.service.AddDraftMember(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.respondDraft(c, id)
}

// EditMember updates one field of one draft member.
//
//	@Summary		Edit draft member
//	@Tags			public
//	@Accept			json
//	@Param			id		path	string				true	"Draft ID"
//	@Param			index	path	int					true	"Member index"
//	@Param			request	body	EditMemberRequest	true	"Field edit"
//	@Success		200	{object}	DraftResponse
//	@Router			/drafts/{id}/members/{index} [patch]
func (h *Handler) EditMember(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.memberIndex(c)
	if !ok {
		return
	}

	var req EditMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.EditDraftMember(id, index, req.Field, req.Value); err != nil {
		h.handleError(c, err)
		return
	}
	h.respondDraft(c, id)
}

// RemoveMember removes the member at index from the draft.
//
//	@Summary		Remove draft member
//	@Tags			public
//	@Param			id		path	string	true	"Draft ID"
//	@Param			index	path	int		true	"Member index"
//	@Success		200	{object}	DraftResponse
//	@Failure		409	{object}	map[string]string
//	@Router			/drafts/{id}/members/{index} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.memberIndex(c)
	if !ok {
		return
	}

	if err := h.service.RemoveDraftMember(id, index); err != nil {
		h.handleError(c, err)
		return
	}
	h.respondDraft(c, id)
}

// SubmitDraft submits the draft for persistence.
//
//	@Summary		Submit draft
//	@Description	Validate the draft and persist the team on success
//	@Tags			public
//	@Produce		json
//	@Param			id	path		string	true	"Draft ID"
//	@Success		201	{object}	Team
//	@Failure		400	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/drafts/{id}/submit [post]
func (h *Handler) SubmitDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	team, err := h.service.SubmitDraft(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// --- Helpers ---

func (h *Handler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) memberIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member index"})
		return 0, false
	}
	return index, true
}

func (h *Handler) respondDraft(c *gin.Context, id uuid.UUID) {
	state, draft, lastError, err := h.service.Draft(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, DraftResponse{ID: id, State: state, Draft: draft, LastError: lastError})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if ve, ok := AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}

	switch {
	case errors.Is(err, ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidMemberIndex), errors.Is(err, ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTeamFull), errors.Is(err, ErrMinimumRoster),
		errors.Is(err, ErrSubmitInFlight), errors.Is(err, ErrNotEditing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrRepository):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration could not be saved, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
