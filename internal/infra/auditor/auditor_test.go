package auditor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldtrace/foodtrace/internal/domain/ledger"
	"github.com/coldtrace/foodtrace/internal/infra/config"
)

func TestRunOncePassesOnIntactChain(t *testing.T) {
	chain := ledger.NewChain(ledger.Config{Difficulty: 1})
	a := New(config.AuditConfig{Enabled: true, Schedule: "@hourly"}, chain, testLogger())

	report := a.RunOnce()
	require.True(t, report.OK)
	require.Equal(t, 1, report.Length)
}

func TestDisabledAuditorStartIsNoOp(t *testing.T) {
	chain := ledger.NewChain(ledger.Config{Difficulty: 1})
	a := New(config.AuditConfig{Enabled: false}, chain, testLogger())

	require.NoError(t, a.Start())
	a.Stop()
}

func TestStartRejectsBadSchedule(t *testing.T) {
	chain := ledger.NewChain(ledger.Config{Difficulty: 1})
	a := New(config.AuditConfig{Enabled: true, Schedule: "not a schedule"}, chain, testLogger())

	require.Error(t, a.Start())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
