//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/eslsoft/charm/internal/infrastructure/config"
	"github.com/eslsoft/charm/internal/infrastructure/console"
	"github.com/eslsoft/charm/internal/infrastructure/database"
	"github.com/eslsoft/charm/internal/infrastructure/logging"
	"github.com/eslsoft/charm/internal/usecase"
	"github.com/eslsoft/charm/internal/usecase/dialogue"
)

var configSet = wire.NewSet(
	config.Load,
	logging.NewLogger,
	provideSessionLogger,
)

var sessionSet = wire.NewSet(
	provideSessionRepository,
	provideSession,
)

var usecaseSet = wire.NewSet(
	usecase.NewWordUsecase,
	provideBackupService,
)

var dialogueSet = wire.NewSet(
	provideTerminal,
	wire.Bind(new(dialogue.Console), new(*console.Terminal)),
	provideEngine,
)

// Initialize builds the application container using Wire.
func Initialize(ctx context.Context, stdio Stdio) (*Container, error) {
	wire.Build(
		configSet,
		sessionSet,
		usecaseSet,
		dialogueSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}

// InitializeSync builds the dependencies of the SQL mirror.
func InitializeSync(ctx context.Context) (*SyncContainer, func(), error) {
	wire.Build(
		configSet,
		sessionSet,
		database.Open,
		wire.Struct(new(SyncContainer), "*"),
	)
	return nil, nil, nil
}
