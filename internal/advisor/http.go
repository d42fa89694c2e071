package advisor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

type Handler struct {
	svc *Service
}

// Register mounts the plan-round and task endpoints under the projects tree.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("/projects/:project_id/plan", h.plan)
	rg.POST("/projects/:project_id/update", h.update)
	rg.GET("/projects/:project_id/tasks", h.tasks)
	rg.POST("/projects/:project_id/tasks/complete", h.completeTask)
}

type planReq struct {
	FruitType string `json:"fruitType"`
}

func (h *Handler) plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil || req.FruitType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Vui lòng nhập loại quả!"})
		return
	}

	res, err := h.svc.RunInitialRound(c.Request.Context(), c.Param("project_id"), req.FruitType)
	if err != nil {
		h.roundError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": res.Result, "tasks": res.Tasks, "taskStatus": res.TaskStatus})
}

func (h *Handler) update(c *gin.Context) {
	res, err := h.svc.RunUpdateRound(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		h.roundError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": res.Result, "tasks": res.Tasks, "taskStatus": res.TaskStatus})
}

func (h *Handler) tasks(c *gin.Context) {
	tasks, status, err := h.svc.Tasks(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": tasks, "taskStatus": status})
}

type completeReq struct {
	TaskKey string `json:"taskKey"`
}

func (h *Handler) completeTask(c *gin.Context) {
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing taskKey"})
		return
	}

	changed, err := h.svc.CompleteTask(c.Request.Context(), c.Param("project_id"), req.TaskKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "changed": changed})
}

func (h *Handler) roundError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, ErrAlreadyInitialized), errors.Is(err, ErrNotInitialized), errors.Is(err, ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		// Generation failures surface to the user as the displayed message.
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Đã xảy ra lỗi: " + err.Error()})
	}
}
