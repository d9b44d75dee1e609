package di

import (
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/ports"
	"github.com/walidMaaninou/lexi-build/application/services"
	"github.com/walidMaaninou/lexi-build/infrastructure/config"
	"github.com/walidMaaninou/lexi-build/infrastructure/spreadsheet"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideSpreadsheetCodec creates the xlsx codec
func ProvideSpreadsheetCodec() ports.SpreadsheetCodec {
	return spreadsheet.NewCodec()
}

// ProvideWorkspaceService creates the workspace service
func ProvideWorkspaceService(codec ports.SpreadsheetCodec, logger *zap.Logger) *services.WorkspaceService {
	return services.NewWorkspaceService(codec, logger)
}
