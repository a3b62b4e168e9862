package app

import (
	"context"
	"fmt"
	"time"

	"pyuml/internal/shared/observability"
)

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) observability.HealthStatus {
	status := observability.HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	s.app.stateMu.RLock()
	lastRun, lastErr := s.app.lastRun, s.app.lastErr
	s.app.stateMu.RUnlock()

	// Converter
	switch {
	case lastErr != nil:
		status.Status = "degraded"
		status.Components["converter"] = "last run failed: " + lastErr.Error()
	case lastRun == nil:
		status.Components["converter"] = "idle"
	default:
		status.Components["converter"] = fmt.Sprintf("ok (%d units, %d classes, %d relations)",
			lastRun.Stats.Units, lastRun.Stats.Classes, lastRun.Stats.Relations)
	}

	// Run history
	if s.app.history != nil {
		status.Components["history"] = "ok"
	} else if s.app.Config.History.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	} else {
		status.Components["history"] = "disabled"
	}

	return status
}
