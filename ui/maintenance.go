package ui

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"golang.org/x/sync/errgroup"

	"github.com/desknote/desknote/util"
	"github.com/desknote/desknote/util/log"
)

// runMaintenance archives old todos, reclaims database space and checks for
// updates, once at startup and then every maintenanceInterval.
func (da *DeskNoteApp) runMaintenance(ctx context.Context) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		if err := da.maintain(ctx); err != nil && ctx.Err() == nil {
			log.Warnf("maintenance: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (da *DeskNoteApp) maintain(ctx context.Context) error {
	if da.sql == nil || da.sql.db == nil {
		return nil
	}
	db := da.sql.db

	var g errgroup.Group
	g.Go(func() error {
		n, err := db.ArchiveOldTodos(ctx)
		if err != nil {
			return fmt.Errorf("archive todos: %w", err)
		}
		if n > 0 {
			log.Debugf("archived %d todos", n)
			da.changed(kindTodos)
		}
		return db.Vacuum(ctx)
	})
	if da.cfg.GetUpdateCheckEnabled() {
		g.Go(func() error {
			return da.checkForUpdates(ctx)
		})
	}
	return g.Wait()
}

func (da *DeskNoteApp) checkForUpdates(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	result, err := util.CheckForUpdates(ctx, nil)
	if err != nil {
		return err
	}
	if !result.UpdateAvailable {
		return nil
	}
	releaseURL, err := url.Parse(result.ReleaseURL)
	if err != nil {
		return fmt.Errorf("invalid release url: %w", err)
	}
	da.updateOnce.Do(func() {
		fyne.Do(func() { da.addUpdateMenuItem(result.LatestVersion, releaseURL) })
	})
	return nil
}
