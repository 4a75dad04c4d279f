package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	textapp "github.com/ironsheep/text-extractor/internal/app"
	"github.com/ironsheep/text-extractor/internal/clipboard"
	"github.com/ironsheep/text-extractor/internal/config"
	"github.com/ironsheep/text-extractor/internal/logger"
	"github.com/ironsheep/text-extractor/internal/ocr"
	"github.com/ironsheep/text-extractor/internal/ui"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const appID = "io.github.ironsheep.text-extractor"

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			printVersion()
			return
		case "--help", "-h", "help":
			printHelp()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s (see --help)\n", os.Args[1])
			os.Exit(2)
		}
	}

	// .env is optional; a missing file is not worth reporting.
	_ = godotenv.Load()

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config %s:\n%v\n", cfgPath, err)
		os.Exit(1)
	}

	var logDir string
	if dir, err := config.Dir(); err == nil {
		logDir = filepath.Join(dir, "logs")
	}
	log, closer, err := logger.Setup(logger.Options{Level: cfg.LogLevel, Dir: logDir, FileOptional: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	log.Info().
		Str("version", Version).
		Str("commit", GitCommit).
		Str("config", cfgPath).
		Strs("languages", cfg.OCR.Languages).
		Bool("async", cfg.OCR.Async).
		Msg("starting")

	engine := ocr.NewTesseractEngine(ocr.TesseractConfig{
		TessdataPrefix: cfg.OCR.TessdataPrefix,
		PageSegMode:    cfg.OCR.PageSegMode,
	})
	if info := ocr.GetInfo(); !info.Available {
		log.Warn().Str("error", info.Error).Msg("OCR unavailable")
	}

	ctrl := textapp.New(textapp.Deps{
		Engine:    engine,
		Clipboard: clipboard.SystemWriter{},
		Config:    cfg,
		Logger:    log,
	})

	a := app.NewWithID(appID)
	th, err := ui.NewTheme(cfg.Theme)
	if err != nil {
		log.Error().Err(err).Msg("invalid theme")
		closer.Close()
		os.Exit(1)
	}
	a.Settings().SetTheme(th)

	ui.NewMainWindow(a, ctrl, cfg, log).ShowAndRun()
	log.Info().Msg("exiting")
}

func printVersion() {
	fmt.Printf("text-extractor %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)

	info := ocr.GetInfo()
	if info.Available {
		fmt.Printf("  Tesseract:  %s (%s)\n", info.Version, info.Backend)
		if len(info.Languages) > 0 {
			fmt.Printf("  Languages:  %s\n", ocr.LanguageHint(info.Languages))
		}
	} else {
		fmt.Printf("  Tesseract:  unavailable (%s)\n", info.Error)
	}
}

func printHelp() {
	path, _ := config.DefaultPath()

	fmt.Println("text-extractor - extract text from images with Tesseract OCR")
	fmt.Println()
	fmt.Println("Usage: text-extractor [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug     Log level\n", config.EnvLogLevel)
	fmt.Printf("  %s=rus+eng  OCR languages\n", config.EnvLanguages)
	fmt.Printf("  %s=/path              Tesseract language data\n", config.EnvTessdataPrefix)
	fmt.Println()
	fmt.Printf("Config file: %s\n", path)
}
