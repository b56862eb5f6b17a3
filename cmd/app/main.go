// Image Editor - load, adjust and save raster images with a live preview
// License: MIT

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"image-editor/internal/gui"
	"image-editor/internal/io"
)

const (
	AppID      = "com.example.image-editor"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	outputDir := flag.String("outputs", io.DefaultOutputDir, "Default directory offered when saving")
	initialImage := flag.String("open", "", "Image to load on start-up")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"outputs":    *outputDir,
	}).Info("Starting Image Editor")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	config := gui.DefaultConfig()
	config.Debug = *debugMode
	config.InitialImage = *initialImage
	if *outputDir != "" {
		config.OutputDir = *outputDir
	}

	mainApp := gui.NewApplication(myApp, logger, config)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   term.IsTerminal(int(os.Stdout.Fd())),
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
