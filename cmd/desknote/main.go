// Command desknote runs the DeskNote sticky-note application.
package main

import (
	"fyne.io/fyne/v2/app"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/ui"
	"github.com/desknote/desknote/util/log"
)

func main() {
	ok, err := acquireLock()
	if err != nil {
		log.Fatalf("failed to acquire single-instance lock: %v", err)
	}
	if !ok {
		log.Warnf("another instance of %s is already running", config.AppName)
		return
	}
	defer releaseLock()

	da := ui.New(app.NewWithID(config.AppID))
	if err := da.Bootstrap(); err != nil {
		releaseLock()
		log.Fatalf("error while running %s: %v", config.AppName, err)
	}
	da.Run()
}
