package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// initJob starts the scheduled catalog backup. The schedule lives in
// the till settings so it can be changed without a restart config edit.
func (a *Application) initJob() {
	a.sched = cron.New()

	spec := a.settings.GetString("backup_spec", "0 3 * * *")
	if _, err := a.sched.AddFunc(spec, a.backupCatalog); err != nil {
		zap.S().Errorf("invalid backup schedule %q: %v", spec, err)
		if _, err := a.sched.AddFunc("0 3 * * *", a.backupCatalog); err != nil {
			zap.S().Errorf("failed to schedule catalog backup: %v", err)
		}
	}

	a.sched.Start()
}

// backupCatalog writes a timestamped CSV snapshot of the product list.
func (a *Application) backupCatalog() {
	dir := filepath.Join(a.appConfig.System.Workdir, "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.S().Errorf("failed to create backup dir: %v", err)
		return
	}

	name := fmt.Sprintf("products-%s.csv", time.Now().Format("20060102-150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		zap.S().Errorf("failed to create backup file: %v", err)
		return
	}
	defer f.Close()

	if err := a.catalog.ExportProductsCSV(f); err != nil {
		zap.S().Errorf("catalog backup failed: %v", err)
		return
	}
	zap.S().Infof("catalog backup written: %s", name)
}
