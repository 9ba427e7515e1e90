// Floor assembly shared by the floor-facing commands.
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/internal/floor"
	"github.com/mesh-intelligence/tableside/internal/ledger"
	"github.com/mesh-intelligence/tableside/internal/menu"
	"github.com/mesh-intelligence/tableside/internal/paths"
	"github.com/mesh-intelligence/tableside/internal/roster"
	"github.com/mesh-intelligence/tableside/internal/tables"
)

// openFloor builds the floor described by cfg. The returned ledger is nil
// when the ledger is disabled; otherwise the caller must close it.
func openFloor(ctx context.Context) (*floor.Floor, *ledger.Ledger, error) {
	catalog, err := menu.Load(paths.ResolveFile(configDir, cfg.MenuPath))
	if err != nil {
		return nil, nil, fmt.Errorf("load menu: %w", err)
	}
	registry, err := tables.NewRegistry(cfg.Tables, cfg.SeatsPerTable, tables.WithLogger(logger.Named("tables")))
	if err != nil {
		return nil, nil, fmt.Errorf("create tables: %w", err)
	}
	staff := roster.Load(paths.ResolveFile(configDir, cfg.RosterPath), logger.Named("roster"))

	opts := []floor.Option{
		floor.WithRoster(staff),
		floor.WithPolicy(cfg.Policy()),
		floor.WithLogger(logger.Named("floor")),
	}

	var l *ledger.Ledger
	if cfg.Ledger {
		l, err = ledger.Open(ctx, logger.Named("ledger"))
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, floor.WithRecorder(l))
	}

	f, err := floor.New(catalog, registry, opts...)
	if err != nil {
		if l != nil {
			l.Close()
		}
		return nil, nil, err
	}
	logger.Debug("floor ready",
		zap.Int("tables", registry.Len()),
		zap.Int("menu_items", catalog.Len()),
		zap.Int("staff", staff.Len()),
		zap.String("policy", f.Policy()),
		zap.Bool("ledger", l != nil))
	return f, l, nil
}
