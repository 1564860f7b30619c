package gateway

import (
	"net/http"
	"runtime"
	"time"

	"github.com/mackerelio/go-osstat/cpu"
	"github.com/mackerelio/go-osstat/memory"
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/logging"
)

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(timeFormat),
	})
}

// handleStatus reports ledger and host statistics for operators.
func (g *Gateway) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(g.started).Seconds()),
		"admin":          g.ledger.Admin().Hex(),
		"policy":         string(g.ledger.Policy()),
		"land_count":     g.ledger.GetLandCount(),
		"goroutines":     runtime.NumGoroutine(),
	}

	if g.store != nil {
		if n, err := g.store.EventCount(); err == nil {
			status["journal_events"] = n
		}
	}

	if memStats, err := memory.Get(); err == nil {
		status["memory"] = map[string]uint64{
			"total_bytes": memStats.Total,
			"used_bytes":  memStats.Used,
			"free_bytes":  memStats.Free,
		}
	} else {
		g.logger.ComponentDebug(logging.ComponentGateway, "failed to read memory stats", zap.Error(err))
	}

	if cpuStats, err := cpu.Get(); err == nil {
		status["cpu"] = map[string]uint64{
			"user":   cpuStats.User,
			"system": cpuStats.System,
			"idle":   cpuStats.Idle,
		}
	} else {
		g.logger.ComponentDebug(logging.ComponentGateway, "failed to read cpu stats", zap.Error(err))
	}

	g.writeJSON(w, http.StatusOK, status)
}
