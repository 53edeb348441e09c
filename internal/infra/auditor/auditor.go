package auditor

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/coldtrace/foodtrace/internal/domain/ledger"
	"github.com/coldtrace/foodtrace/internal/infra/config"
)

// Auditor runs a scheduled integrity pass over the chain and logs the
// outcome. It never repairs anything; a bad report is an operator signal.
type Auditor struct {
	cfg    config.AuditConfig
	chain  *ledger.Chain
	logger *slog.Logger
	cron   *cron.Cron
}

// New constructs the scheduled auditor.
func New(cfg config.AuditConfig, chain *ledger.Chain, logger *slog.Logger) *Auditor {
	return &Auditor{
		cfg:    cfg,
		chain:  chain,
		logger: logger.With("component", "auditor"),
	}
}

// Start registers the cron entry and begins scheduling. Disabled auditors
// start as a no-op so the caller does not need to branch.
func (a *Auditor) Start() error {
	if !a.cfg.Enabled {
		a.logger.Info("chain audit disabled")
		return nil
	}
	a.cron = cron.New()
	if _, err := a.cron.AddFunc(a.cfg.Schedule, func() { a.RunOnce() }); err != nil {
		return err
	}
	a.cron.Start()
	a.logger.Info("chain audit scheduled", "schedule", a.cfg.Schedule)
	return nil
}

// Stop halts scheduling; an in-flight audit finishes on its own.
func (a *Auditor) Stop() {
	if a.cron != nil {
		a.cron.Stop()
	}
}

// RunOnce executes a single audit pass and returns the report.
func (a *Auditor) RunOnce() ledger.AuditReport {
	report := a.chain.Audit()
	if report.OK {
		a.logger.Info("chain audit passed", "length", report.Length)
	} else {
		a.logger.Error("chain audit failed",
			"length", report.Length,
			"firstBad", report.FirstBad,
			"violation", report.Violation,
		)
	}
	return report
}
