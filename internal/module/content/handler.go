package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the public landing page data.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/event", h.event)
}

// event returns the landing page data.
//
//	@Summary		Event information
//	@Description	Returns the hackathon schedule, challenge tracks, and judging criteria
//	@Tags			public
//	@Produce		json
//	@Success		200	{object}	EventInfo
//	@Router			/event [get]
func (h *Handler) event(c *gin.Context) {
	c.JSON(http.StatusOK, Event())
}
