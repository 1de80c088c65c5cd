package assistantRepository

import (
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/kvstore"
	"context"

	"github.com/sirupsen/logrus"
)

func New(store kvstore.Store, log *logrus.Logger) Repository {
	return &repository{
		store: store,
		log:   log,
	}
}

type repository struct {
	store kvstore.Store
	log   *logrus.Logger
}

type Repository interface {
	NewClient() Client
}

func (r *repository) NewClient() Client {
	return Client{
		Settings:       &settingsRepository{store: r.store, log: r.log},
		CustomCommands: &customCommandRepository{store: r.store, log: r.log},
	}
}

type Client struct {
	Settings interface {
		GetSettings(ctx context.Context) (entity.Settings, error)
		SaveSettings(ctx context.Context, settings entity.Settings) error
	}

	CustomCommands interface {
		GetCustomCommands(ctx context.Context) ([]entity.CustomCommand, error)
		SaveCustomCommands(ctx context.Context, commands []entity.CustomCommand) error
	}
}

type settingsRepository struct {
	store kvstore.Store
	log   *logrus.Logger
}

type customCommandRepository struct {
	store kvstore.Store
	log   *logrus.Logger
}
