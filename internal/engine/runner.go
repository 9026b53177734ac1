package engine

import (
	"log/slog"
	"time"
)

// Runner paces ticks in wall-clock time for live observation. Speed is
// days per second; 0 pauses. Batch runs skip the Runner and call
// SimulateDailyTick directly.
type Runner struct {
	Manager *VillageManager
	Speed   float64
	Running bool
	MaxDays int // stop after this many days; 0 runs until Stop

	// OnDay fires after each completed tick, for persistence hooks.
	OnDay func(m *VillageManager)
}

// NewRunner creates a paused runner at one day per second.
func NewRunner(m *VillageManager) *Runner {
	return &Runner{Manager: m, Speed: 1.0}
}

// Run ticks until Stop is called. Blocks.
func (r *Runner) Run() {
	r.Running = true
	slog.Info("runner started", "day", r.Manager.Day, "speed", r.Speed)

	for r.Running {
		if r.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.Manager.SimulateDailyTick()
		if r.OnDay != nil {
			r.OnDay(r.Manager)
		}

		if r.MaxDays > 0 && r.Manager.Day >= r.MaxDays {
			r.Running = false
			break
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(time.Second) / r.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("runner stopped", "day", r.Manager.Day)
}

// Stop halts the loop after the current tick.
func (r *Runner) Stop() {
	r.Running = false
}
