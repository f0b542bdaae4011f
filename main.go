// Sketchpad is a vector drawing application. Shapes are drawn with a set of
// tools (pen, lines, rectangles, ellipses, arrows, stars, text and more),
// stored as editable objects, and can be saved as projects or exported to
// PDF.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"sketchpad/internal/app"
	"sketchpad/internal/tool"
	"sketchpad/internal/version"
	"sketchpad/ui/mainwindow"
	"sketchpad/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	showVersion := flag.Bool("version", false, "print version and exit")
	projectPath := flag.String("project", "", "project file to open at startup")
	flag.Parse()

	if *showVersion {
		fmt.Println("sketchpad", version.String())
		return
	}

	fyneApp := fyneapp.NewWithID("io.sketchpad.app")
	fyneApp.Settings().SetTheme(&app.SketchpadTheme{})

	state := app.NewState()
	tools := tool.NewDefaultManager()
	p := prefs.Load()

	win := mainwindow.New(fyneApp, state, tools, p)

	if *projectPath == "" {
		*projectPath = p.String(prefs.KeyLastProject, "")
	}
	if *projectPath != "" {
		if err := state.LoadProject(*projectPath); err != nil {
			log.Printf("could not open project %s: %v", *projectPath, err)
		}
	}

	// Prompt for a restart when a newer binary appears during development.
	if reloader := app.NewHotReloader(2 * time.Second); reloader != nil {
		reloader.OnNewBinary(func() {
			dialog.ShowConfirm("New Build",
				"A newer binary was built. Restart now?", func(ok bool) {
					if !ok {
						reloader.ResetBaseline()
						reloader.Start()
						return
					}
					if err := reloader.Restart(); err != nil {
						log.Printf("restart failed: %v", err)
					}
				}, win.Window)
		})
		reloader.Start()
		defer reloader.Stop()
	}

	win.SetOnClosed(func() {
		if err := p.Save(); err != nil {
			log.Printf("saving preferences: %v", err)
		}
	})

	win.ShowAndRun()
}
