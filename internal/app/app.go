// Package app wires configuration, storage, clients and services into
// one application core shared by the server entrypoint and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alokagarwal565/scenario-advisor/internal/clients/gemini"
	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/services/analysis"
	"github.com/alokagarwal565/scenario-advisor/internal/services/narrative"
	"github.com/alokagarwal565/scenario-advisor/internal/storage"
)

// App holds all initialized services, clients and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	Generator       interfaces.TextGenerator
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes the application core. configPath may be empty, in
// which case ADVISOR_CONFIG and then the binary directory are checked.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("ADVISOR_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "advisor.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/advisor.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to the binary directory.
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// The Gemini client is optional: without a key every analysis uses
	// the deterministic fallback narrative.
	var generator interfaces.TextGenerator
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithLogger(logger),
		)
		if err != nil {
			storageManager.Close()
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		generator = client
		logger.Info().Str("model", config.Clients.Gemini.Model).Msg("Gemini client initialized")
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not configured - narratives will use the local fallback")
	}

	retryCfg := common.RetryConfig{
		MaxRetries:      config.Engine.MaxRetries,
		BaseDelay:       config.Engine.GetBaseDelay(),
		ExponentialBase: config.Engine.ExponentialBase,
		MaxDelay:        config.Engine.GetMaxDelay(),
	}

	composer := narrative.NewComposer(generator,
		narrative.WithRetryConfig(retryCfg),
		narrative.WithListCaps(config.Engine.MaxInsights, config.Engine.MaxRecommendations),
		narrative.WithLogger(logger),
	)

	analysisService := analysis.NewService(composer,
		analysis.WithStore(storageManager.AnalysisStore()),
		analysis.WithLogger(logger),
	)

	logger.Info().
		Str("environment", config.Environment).
		Msg("Application initialized")

	return &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		Generator:       generator,
		AnalysisService: analysisService,
		StartupTime:     time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
