package engine

import (
	"go.simpledb/internal/config"
	"go.simpledb/internal/logger"
	"go.simpledb/internal/metrics"
	"go.simpledb/internal/storage"
)

func Open(path string, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Database, error) {
	table, err := storage.Open(path,
		storage.WithMaxPages(cfg.MaxPages),
		storage.WithLogger(log),
		storage.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	return &Database{
		table: table,
		path:  path,
	}, nil
}
