package ops_test

import (
	"testing"

	"brronson/internal/config"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/ops"
	"brronson/internal/testsupport"
)

func newTestEngine(t *testing.T) (*ops.Engine, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	engine := ops.NewEngine(cfg, logging.NewNop(), metrics.Nop{})
	return engine, cfg
}
