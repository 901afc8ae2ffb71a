// Package ui renders the system tray: a status line, a stop control, and
// quit. The tray is a thin viewer over the export service.
package ui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/nickmaccarthy/ClipChop/internal/exporter"
)

type Tray struct {
	exportSvc *exporter.Service
	logger    *slog.Logger

	statusItem *systray.MenuItem
	stopItem   *systray.MenuItem

	mu sync.Mutex

	onQuit func()
}

type TrayConfig struct {
	ExportService *exporter.Service
	Logger        *slog.Logger
	OnQuit        func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		exportSvc: cfg.ExportService,
		logger:    cfg.Logger,
		onQuit:    cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("ClipChop")
	systray.SetTooltip("ClipChop Agent")

	t.statusItem = systray.AddMenuItem("Status: Idle", "Current export status")
	t.statusItem.Disable()

	systray.AddSeparator()

	t.stopItem = systray.AddMenuItem("Stop Export", "Stop the running export")
	t.stopItem.Disable()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit ClipChop Agent")

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.refresh()
			case <-t.stopItem.ClickedCh:
				t.handleStop()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.exportSvc.Status()
	if st.Active {
		t.statusItem.SetTitle(fmt.Sprintf("Status: Exporting %d/%d", st.Completed, st.Total))
		t.stopItem.Enable()
	} else {
		t.statusItem.SetTitle("Status: Idle")
		t.stopItem.Disable()
	}
}

func (t *Tray) handleStop() {
	if err := t.exportSvc.Stop(); err != nil {
		t.logger.Error("failed to stop export from tray", "error", err)
	}
}

func (t *Tray) Quit() {
	systray.Quit()
}
