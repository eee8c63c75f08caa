package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/api/ws"
	"github.com/launchdock/backend/internal/domain/launcher"
	"github.com/launchdock/backend/internal/domain/registry"
	"github.com/launchdock/backend/internal/domain/startup"
	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/shared/types"
	"github.com/launchdock/backend/internal/shared/utils"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry     *registry.Manager
	launcher     *launcher.Launcher
	orchestrator *startup.Orchestrator
	hub          *ws.Hub
	logger       *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	reg *registry.Manager,
	l *launcher.Launcher,
	orchestrator *startup.Orchestrator,
	hub *ws.Hub,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		registry:     reg,
		launcher:     l,
		orchestrator: orchestrator,
		hub:          hub,
		logger:       logger,
	}
}

func (h *Handlers) publish(eventType types.EventType, appID, name, errMsg string) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(types.Event{
		Type:      eventType,
		AppID:     appID,
		Name:      name,
		Error:     errMsg,
		Timestamp: time.Now(),
	})
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "LaunchDock Service (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
	})
}

// ListApps lists all registered definitions
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.registry.List(),
		"stats": h.registry.Stats(),
	})
}

func validateFields(fields types.AppFields) error {
	if err := utils.ValidateName(fields.Name, "name"); err != nil {
		return err
	}
	if err := utils.ValidatePath(fields.Path, "path"); err != nil {
		return err
	}
	if err := utils.ValidateArguments(fields.Arguments, "arguments"); err != nil {
		return err
	}
	return utils.ValidateDescription(fields.Description, "description")
}

// AddApp registers a new definition
func (h *Handlers) AddApp(c *gin.Context) {
	var fields types.AppFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validateFields(fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	def, err := h.registry.Add(fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publish(types.EventAppAdded, def.ID, def.Name, "")
	c.JSON(http.StatusCreated, gin.H{"app": def})
}

// UpdateApp replaces the mutable fields of an existing definition
func (h *Handlers) UpdateApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fields types.AppFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validateFields(fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registry.Update(appID, fields); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publish(types.EventAppUpdated, appID, fields.Name, "")
	c.JSON(http.StatusOK, gin.H{"success": true, "app_id": appID})
}

// RemoveApp deletes a definition. Removing an absent id succeeds.
func (h *Handlers) RemoveApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registry.Remove(appID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publish(types.EventAppRemoved, appID, "", "")
	c.JSON(http.StatusOK, gin.H{"success": true, "app_id": appID})
}

// ResetConfig clears all definitions
func (h *Handlers) ResetConfig(c *gin.Context) {
	if err := h.registry.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publish(types.EventConfigReset, "", "", "")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// launchRequest optionally overrides the stored path and arguments, which
// also allows one-off launches of ids that have no definition.
type launchRequest struct {
	Path      string `json:"path"`
	Arguments string `json:"arguments"`
}

// LaunchApp starts the app's process
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req launchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	def, known := h.registry.Get(appID)
	path, arguments := req.Path, req.Arguments
	if path == "" {
		if !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required for unregistered apps"})
			return
		}
		path = def.Path
		arguments = def.Arguments
	}
	if err := utils.ValidatePath(path, "path"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateArguments(arguments, "arguments"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.launcher.Launch(appID, path, arguments); err != nil {
		h.publish(types.EventLaunchFailed, appID, def.Name, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publish(types.EventAppLaunched, appID, def.Name, "")
	c.JSON(http.StatusOK, gin.H{"success": true, "app_id": appID})
}

// StopApp terminates the app's tracked process
func (h *Handlers) StopApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.launcher.Stop(appID); err != nil {
		switch {
		case errors.Is(err, launcher.ErrNotRunning):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, launcher.ErrUnsupportedOperation):
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.publish(types.EventAppStopped, appID, "", "")
	c.JSON(http.StatusOK, gin.H{"success": true, "app_id": appID})
}

// IsRunning reports whether the app has a tracked running process
func (h *Handlers) IsRunning(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"app_id":  appID,
		"running": h.registry.IsRunning(appID),
	})
}

// LaunchStartupApps kicks off the boot-time launch sequence in the
// background. Always accepted; progress is reported over the event stream.
func (h *Handlers) LaunchStartupApps(c *gin.Context) {
	// The request context dies with the response; the sequence must not.
	ctx := context.Background()
	go func() {
		h.publish(types.EventStartupBegan, "", "", "")
		launched, err := h.orchestrator.Run(ctx)
		if err != nil {
			h.logger.Warn("Startup sequence ended early", zap.Error(err))
		}
		h.publish(types.EventStartupDone, "", "", "")
		h.logger.Info("Startup sequence finished", zap.Int("launched", launched))
	}()

	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
