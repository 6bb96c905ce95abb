package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTags handles GET /api/tags
// The usage-count index, ordered by name. Counts are best-effort; the UI
// treats them as hints.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tagRepo.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tags unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags)})
}
