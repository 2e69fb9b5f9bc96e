// In file: cmd/moviebot/handler.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dileep-u-k/moviebot/internal/stats"
	"github.com/dileep-u-k/moviebot/internal/swaig"
	"github.com/dileep-u-k/moviebot/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// StatsRecorder is the part of the stats profiler the handler needs.
type StatsRecorder interface {
	RecordSuccess(ctx context.Context, name string, latency time.Duration)
	RecordFailure(ctx context.Context, name string)
	GetProfiles(ctx context.Context, names []string) ([]*stats.ToolProfile, error)
}

var _ StatsRecorder = (*stats.Profiler)(nil)

// SWAIGHandler answers the voice agent's signature and invocation requests.
type SWAIGHandler struct {
	toolManager *tools.ToolManager
	// stats is nil when Redis is not configured.
	stats StatsRecorder
}

func NewSWAIGHandler(toolManager *tools.ToolManager, recorder StatsRecorder) *SWAIGHandler {
	return &SWAIGHandler{toolManager: toolManager, stats: recorder}
}

// HandleSWAIG serves both protocol messages on the webhook route.
func (h *SWAIGHandler) HandleSWAIG(c *gin.Context) {
	var msg swaig.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if msg.IsSignatureRequest() {
		c.JSON(http.StatusOK, h.signatures(msg.Functions, webhookURL(c)))
		return
	}
	if msg.Function == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: no function named"})
		return
	}
	h.invoke(c, msg)
}

// signatures describes the requested tools, or all of them when none are named.
// Names the bot does not know are skipped.
func (h *SWAIGHandler) signatures(names []string, hookURL string) []swaig.Signature {
	if len(names) == 0 {
		names = h.toolManager.Names()
	}
	sigs := make([]swaig.Signature, 0, len(names))
	for _, name := range names {
		def, ok := h.toolManager.Definition(name)
		if !ok {
			log.Printf("WARNING: signature requested for unknown function '%s'", name)
			continue
		}
		sigs = append(sigs, toSignature(def, hookURL))
	}
	return sigs
}

func (h *SWAIGHandler) invoke(c *gin.Context, msg swaig.Message) {
	ctx := c.Request.Context()
	args, err := json.Marshal(msg.Argument.Args())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	log.Printf("🛠️ Executing tool: %s (request %s) with args: %s", msg.Function, c.GetString(requestIDHeader), args)
	start := time.Now()
	result, err := h.toolManager.Execute(ctx, msg.Function, string(args))

	var toolErr *tools.ToolError
	switch {
	case errors.Is(err, tools.ErrToolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.As(err, &toolErr):
		// The caller still gets something to say.
		log.Printf("Tool %s failed: %v", msg.Function, err)
		h.recordFailure(ctx, msg.Function)
		c.JSON(http.StatusOK, swaig.InvokeResponse{Response: toolErr.Message})
		return
	case err != nil:
		log.Printf("Tool %s failed: %v", msg.Function, err)
		h.recordFailure(ctx, msg.Function)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error executing tool %s", msg.Function)})
		return
	}

	if h.stats != nil {
		h.stats.RecordSuccess(ctx, msg.Function, time.Since(start))
	}
	c.JSON(http.StatusOK, swaig.InvokeResponse{Response: result})
}

func (h *SWAIGHandler) recordFailure(ctx context.Context, name string) {
	if h.stats != nil {
		h.stats.RecordFailure(ctx, name)
	}
}

// HandleHealth reports liveness and the number of exposed functions.
func (h *SWAIGHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"functions": h.toolManager.ToolCount(),
		"stats":     h.stats != nil,
	})
}

// HandleVersion reports build and component versions.
func (h *SWAIGHandler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, GetBuildInfo())
}

// HandleStats returns the usage profile of every tool.
func (h *SWAIGHandler) HandleStats(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "usage statistics are disabled (REDIS_ADDR is not set)"})
		return
	}
	profiles, err := h.stats.GetProfiles(c.Request.Context(), h.toolManager.Names())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not read usage statistics: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// toSignature translates a tool definition into its SWAIG description.
func toSignature(def tools.Tool, hookURL string) swaig.Signature {
	params := def.Function.Parameters
	props := make(map[string]swaig.Property, len(params.Properties))
	for name, p := range params.Properties {
		if p == nil {
			continue
		}
		props[name] = swaig.Property{
			Type:        p.Type,
			Description: p.Description,
			Enum:        enumValues(p.Enum),
			Default:     p.Default,
		}
	}
	return swaig.Signature{
		Function: def.Function.Name,
		Purpose:  def.Function.Description,
		Argument: swaig.ArgumentSchema{
			Type:       swaig.ArgumentTypeObject,
			Properties: props,
			Required:   params.Required,
		},
		WebHookURL: hookURL,
	}
}

func enumValues(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// webhookURL rebuilds the public URL of the current request, honoring a
// terminating proxy.
func webhookURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.Path)
}

// requestID echoes the caller's X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// NewRouter wires the handler's routes onto a gin engine.
func NewRouter(cfg *AppConfig, h *SWAIGHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), requestID())

	engine.GET("/health", h.HandleHealth)
	engine.GET("/version", h.HandleVersion)
	engine.GET("/stats", h.HandleStats)

	webhook := engine.Group("")
	if cfg.BasicAuthEnabled() {
		webhook.Use(gin.BasicAuth(gin.Accounts{cfg.BasicAuthUser: cfg.BasicAuthPassword}))
	}
	webhook.POST(cfg.Route, h.HandleSWAIG)
	return engine
}
