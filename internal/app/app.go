// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/wavelight/voicewave/internal/adapter/audio/mock"
	paadapter "github.com/wavelight/voicewave/internal/adapter/audio/portaudio"
	"github.com/wavelight/voicewave/internal/adapter/eventbus"
	"github.com/wavelight/voicewave/internal/adapter/repository/memory"
	fyneui "github.com/wavelight/voicewave/internal/adapter/ui/fyne"
	"github.com/wavelight/voicewave/internal/logger"
	"github.com/wavelight/voicewave/internal/ports"
	"github.com/wavelight/voicewave/internal/service"
	"github.com/wavelight/voicewave/internal/visualizer"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus        ports.EventBus
	captureProvider ports.CaptureProvider
	paProvider      *paadapter.Provider

	// Repositories
	preferencesRepo ports.PreferencesRepository

	// Services
	visualizerService *service.VisualizerService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// UseMockCapture determines whether to use a mock capture provider (for testing)
	UseMockCapture bool

	// Pipeline holds the analysis and shaping tunables
	Pipeline visualizer.Config

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:          "com.wavelight.voicewave",
		AppName:        "VoiceWave",
		UseMockCapture: false,
		Pipeline:       visualizer.DefaultConfig(),
		LogLevel:       loggerCfg.Level,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	if err := config.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	loggerCfg := logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	}
	app.logger = logger.NewLogger(loggerCfg)
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName))

	// Step 3: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 4: Create a capture provider
	if config.UseMockCapture {
		provider := mock.NewProvider()
		provider.SetLogger(app.logger.With(slog.String("capture", "mock")))
		app.captureProvider = provider
	} else {
		provider := paadapter.NewProvider(paadapter.Config{
			AnalysisWindowSize: config.Pipeline.AnalysisWindowSize,
			AnalyserSmoothing:  config.Pipeline.AnalyserSmoothing,
			HighpassHz:         config.Pipeline.HighpassHz,
			LowpassHz:          config.Pipeline.LowpassHz,
		}, app.logger.With(slog.String("capture", "portaudio")))
		if err := provider.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize capture provider: %w", err)
		}
		app.paProvider = provider
		app.captureProvider = provider
	}

	// Step 5: Create repositories
	app.preferencesRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())

	// Step 6: Create services (with dependency injection)
	app.visualizerService = service.NewVisualizerService(
		app.logger.With(slog.String("service", "visualizer")),
		app.captureProvider,
		app.eventBus,
		app.preferencesRepo,
		config.Pipeline,
	)

	// Step 7: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp)

	// Step 8: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.visualizerService,
		app.eventBus,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)

	// Step 9: Resume capture if it was running last session
	if enabled, err := app.preferencesRepo.LoadVisualizerEnabled(); err == nil && enabled {
		if err := app.visualizerService.Activate(); err != nil {
			// Non-fatal - the idle animation still runs
			app.logger.Warn("failed to resume capture", slog.Any("error", err))
		}
	}

	return app, nil
}

// Run starts the application.
// This is called from main.go after the application is created.
// It blocks until the window is closed.
func (a *Application) Run() {
	a.logger.Info("VoiceWave started")
	a.mainWindow.Show()
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	// Shutdown UI and presenter
	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	// Shutdown services
	if a.visualizerService != nil {
		a.visualizerService.Shutdown()
	}

	// Release the capture backend
	if a.paProvider != nil {
		if err := a.paProvider.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown capture provider", slog.Any("error", err))
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
