package llm

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Generator is satisfied by GeminiClient and by test fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Handler struct {
	gen Generator
}

// RegisterRoutes mounts the raw generation passthrough. Plan rounds go
// through the advisor endpoints; this one exists for free-form prompts.
func RegisterRoutes(rg *gin.RouterGroup, gen Generator) {
	h := &Handler{gen: gen}
	rg.POST("/generate", h.generate)
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing prompt"})
		return
	}

	text, err := h.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": text})
}
