package geocode

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

func RegisterRoutes(rg *gin.RouterGroup, client *Client) {
	h := &Handler{client: client}
	rg.POST("/location", h.reverse)
}

type reverseReq struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func (h *Handler) reverse(c *gin.Context) {
	var req reverseReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lon == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Vui lòng cung cấp tọa độ"})
		return
	}

	info, err := h.client.Reverse(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Không thể lấy thông tin vị trí"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": info})
}
