// Package main provides the entry point for the Data Digitizer application.
package main

import (
	"log"
	"os"
	"path/filepath"

	"data-digitizer/internal/app"
	"data-digitizer/internal/project"
	"data-digitizer/internal/version"
	"data-digitizer/ui/mainwindow"
	"data-digitizer/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appID    = "io.github.datadigitizer"
	appTitle = "Data Digitizer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.DigitizerTheme{})

	appPrefs := prefs.Load()
	session := app.NewSession()
	session.LastFolder = appPrefs.String(prefs.KeyImageFolder)
	session.HitFraction = appPrefs.FloatWithFallback(prefs.KeyHitFraction, app.DefaultHitFraction)
	session.ShiftFraction = appPrefs.FloatWithFallback(prefs.KeyShiftFraction, app.DefaultShiftFraction)
	session.MarkerFraction = appPrefs.FloatWithFallback(prefs.KeyMarkerFraction, app.DefaultMarkerFraction)

	win := mainwindow.New(fyneApp, session, appPrefs)
	win.Resize(fyne.NewSize(1200, 800))
	fyneApp.Lifecycle().SetOnStopped(win.SavePreferences)

	// Handle command line arguments
	if len(os.Args) > 1 {
		openArg(session, os.Args[1])
	}

	win.ShowAndRun()
}

// openArg opens a session file or an image named on the command line.
func openArg(session *app.Session, path string) {
	var err error
	if filepath.Ext(path) == project.Extension {
		err = session.LoadSession(path)
	} else {
		err = session.Dispatch(app.CmdOpenImage{Path: path})
	}
	if err != nil {
		log.Printf("Failed to open %s: %v", path, err)
	}
}
