package projects

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Store is the persistence surface the HTTP layer needs.
type Store interface {
	Create(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Delete(ctx context.Context, projectID string) (bool, error)
	SaveState(ctx context.Context, projectID string, state *domain.ProjectState) error
	LoadState(ctx context.Context, projectID string) (*domain.ProjectState, bool, error)
}

type Handler struct {
	store Store
}

// Register mounts the project catalog routes and the state save/load/delete
// endpoints the frontend calls.
func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store}

	rg.POST("/projects", h.create)
	rg.GET("/projects", h.list)
	rg.DELETE("/projects/:project_id", h.delete)

	rg.POST("/project/save", h.saveState)
	rg.POST("/project/load", h.loadState)
	rg.POST("/project/delete", h.deleteState)
}

type createReq struct {
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.store.Create(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) delete(c *gin.Context) {
	projectID := c.Param("project_id")

	ok, err := h.store.Delete(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type saveStateReq struct {
	ProjectID string               `json:"projectId"`
	Data      *domain.ProjectState `json:"data"`
}

func (h *Handler) saveState(c *gin.Context) {
	var req saveStateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing projectId or data"})
		return
	}

	if err := h.store.SaveState(c.Request.Context(), req.ProjectID, req.Data); err != nil {
		// Optimistic client state: the caller keeps its in-memory copy.
		log.Printf("save state for project %s failed: %v", req.ProjectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type projectIDReq struct {
	ProjectID string `json:"projectId"`
}

func (h *Handler) loadState(c *gin.Context) {
	var req projectIDReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing projectId"})
		return
	}

	state, found, err := h.store.LoadState(c.Request.Context(), req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !found {
		// No saved data yet is not an error.
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": state})
}

func (h *Handler) deleteState(c *gin.Context) {
	var req projectIDReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing projectId"})
		return
	}

	if _, err := h.store.Delete(c.Request.Context(), req.ProjectID); err != nil {
		log.Printf("delete project %s failed: %v", req.ProjectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
