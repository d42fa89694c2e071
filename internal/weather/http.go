package weather

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}
	rg.POST("/weather", h.lookup)
}

type lookupReq struct {
	City string `json:"city"`
}

func (h *Handler) lookup(c *gin.Context) {
	var req lookupReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.City) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Vui lòng cung cấp tên thành phố"})
		return
	}

	info, err := h.svc.Lookup(c.Request.Context(), strings.TrimSpace(req.City))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": info})
}
