//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/ports"
	"github.com/walidMaaninou/lexi-build/application/services"
	"github.com/walidMaaninou/lexi-build/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Codec            ports.SpreadsheetCodec
	WorkspaceService *services.WorkspaceService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideSpreadsheetCodec,
	ProvideWorkspaceService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
