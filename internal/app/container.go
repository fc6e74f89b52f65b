package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/charm/internal/adapter/repository"
	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/infrastructure/config"
	"github.com/eslsoft/charm/internal/infrastructure/console"
	"github.com/eslsoft/charm/internal/infrastructure/database"
	"github.com/eslsoft/charm/internal/repository"
	"github.com/eslsoft/charm/internal/usecase"
	"github.com/eslsoft/charm/internal/usecase/backup"
	"github.com/eslsoft/charm/internal/usecase/dialogue"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Session    *entity.Session
	Repository repository.SessionRepository
	Words      usecase.WordUsecase
	Backup     *backup.Service
	Engine     *dialogue.Engine
}

// SyncContainer carries what db-sync needs on top of the loaded session.
type SyncContainer struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Session *entity.Session
	DB      *database.DB
}

// Stdio is the terminal the dialogue runs on.
type Stdio struct {
	In  io.Reader
	Out io.Writer
}

// SessionLogger tags every entry of one run with a session id.
type SessionLogger logrus.FieldLogger

func provideSessionLogger(logger *logrus.Logger) SessionLogger {
	return logger.WithField("session", uuid.NewString())
}

func provideSessionRepository(cfg *config.Config, logger *logrus.Logger) repository.SessionRepository {
	return adapterrepo.NewSessionRepository(cfg.Data.Dir, logger)
}

// provideSession loads the persisted vocabulary and preferences.
func provideSession(ctx context.Context, repo repository.SessionRepository, logger SessionLogger) (*entity.Session, error) {
	session := entity.NewSession()
	if err := repo.Load(ctx, session); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"words":   session.Words.Len(),
		"version": session.Prefs.Version,
	}).Info("session loaded")
	return session, nil
}

func provideBackupService() *backup.Service {
	return backup.NewService()
}

func provideTerminal(stdio Stdio) *console.Terminal {
	return console.NewTerminal(stdio.In, stdio.Out)
}

func provideEngine(cfg *config.Config, session *entity.Session, repo repository.SessionRepository, term dialogue.Console, logger SessionLogger) *dialogue.Engine {
	return dialogue.NewEngine(session, repo, term,
		dialogue.WithExitToken(cfg.Session.ExitToken),
		dialogue.WithLogger(logger),
	)
}
