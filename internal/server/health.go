package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
)

// StartTime is recorded when the package is loaded, for uptime reporting.
var StartTime = time.Now()

const bytesPerGB = 1024 * 1024 * 1024

// healthHandler collects and returns process and system-level metrics.
// Individual probes are best effort; a failing probe leaves its section out.
func (s *Server) healthHandler(c echo.Context) error {
	logger := loggerFrom(c)

	var (
		mu     sync.Mutex
		result = map[string]interface{}{
			"status": "online",
			"model":  s.cfg.Model,
			"runtime": map[string]interface{}{
				"uptime":     time.Since(StartTime).Round(time.Second).String(),
				"start_time": StartTime.Format(time.RFC3339),
			},
			"api_key_configured": s.cfg.HasAPIKey(),
			"stored_plans":       s.plans.Len(),
		}
	)

	g, ctx := errgroup.WithContext(c.Request().Context())

	g.Go(func() error {
		v, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read memory stats")
			return nil
		}
		mu.Lock()
		result["memory"] = map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(v.Total)/bytesPerGB),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(v.Used)/bytesPerGB),
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		percent, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil || len(percent) == 0 {
			logger.Warn().Err(err).Msg("Failed to read CPU stats")
			return nil
		}
		mu.Lock()
		result["cpu"] = map[string]interface{}{
			"usage_percent": fmt.Sprintf("%.2f%%", percent[0]),
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		d, err := disk.UsageWithContext(ctx, "/")
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read disk stats")
			return nil
		}
		mu.Lock()
		result["disk"] = map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(d.Total)/bytesPerGB),
			"used_percent": fmt.Sprintf("%.2f%%", d.UsedPercent),
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read host info")
			return nil
		}
		mu.Lock()
		result["host"] = map[string]interface{}{
			"os":       info.OS,
			"platform": info.Platform,
			"arch":     info.KernelArch,
			"hostname": info.Hostname,
		}
		mu.Unlock()
		return nil
	})

	_ = g.Wait()

	return c.JSON(http.StatusOK, result)
}
