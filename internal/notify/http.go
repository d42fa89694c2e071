package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	agg *Aggregator
}

// RegisterRoutes mounts the notification feed endpoint. Each response is the
// authoritative feed for "right now"; clients replace, not append.
func RegisterRoutes(rg *gin.RouterGroup, agg *Aggregator) {
	h := &Handler{agg: agg}
	rg.GET("/notifications", h.feed)
}

func (h *Handler) feed(c *gin.Context) {
	feed := h.agg.Feed()
	if feed == nil {
		feed = []Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": feed})
}
