package roster

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the admin roster endpoints. Authentication is applied
// by the route group the handler is registered on.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts roster endpoints on an admin-gated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/teams", h.listTeams)
	rg.POST("/teams/refresh", h.refresh)
	rg.GET("/teams/export", h.export)
	rg.GET("/stats", h.stats)
}

// listTeams returns the cached roster, optionally filtered.
//
//	@Summary		List registered teams
//	@Description	Returns the cached roster, optionally filtered by a free-text query
//	@Tags			admin
//	@Produce		json
//	@Param			q	query		string	false	"Case-insensitive filter across team and member fields"
//	@Success		200	{object}	map[string]interface{}
//	@Security		BearerAuth
//	@Router			/admin/teams [get]
func (h *Handler) listTeams(c *gin.Context) {
	teams := h.service.Filter(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"count": len(teams),
	})
}

// refresh reloads the roster snapshot from storage.
//
//	@Summary	Reload the roster from storage
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	503	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/admin/teams/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	teams, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		// Previous snapshot stays served; tell the admin the reload failed.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to refresh registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"count": len(teams),
	})
}

// export streams the roster as a CSV download.
//
//	@Summary		Export the roster as CSV
//	@Description	Streams a CSV of the (optionally filtered) roster
//	@Tags			admin
//	@Produce		text/csv
//	@Param			q	query		string	false	"Case-insensitive filter across team and member fields"
//	@Success		200	{string}	string	"CSV content"
//	@Failure		409	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/admin/teams/export [get]
func (h *Handler) export(c *gin.Context) {
	filename, content, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			c.JSON(http.StatusConflict, gin.H{"error": "no registrations to export"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

// stats reports roster summary counts.
//
//	@Summary	Roster summary counts
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	Stats
//	@Security	BearerAuth
//	@Router		/admin/stats [get]
func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats())
}
