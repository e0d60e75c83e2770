// Package di assembles the application object graph with wire. The storage
// container is built once from configuration and shared by every service;
// no service ever constructs its own storage.
package di

import (
	"log/slog"
	"path/filepath"

	"parley/config"
	"parley/internal/auth"
	"parley/internal/channel"
	"parley/internal/content"
	"parley/internal/message"
	"parley/internal/readstatus"
	"parley/internal/storage"
	"parley/internal/storage/badgerstore"
	"parley/internal/storage/file"
	"parley/internal/storage/memory"
	"parley/internal/user"
	"parley/internal/userstatus"
)

// App bundles every service of the core behind one handle for external
// callers (controllers, the CLI).
type App struct {
	Users        *user.Service
	Channels     *channel.Service
	Messages     *message.Service
	ReadStatuses *readstatus.Service
	UserStatuses *userstatus.Service
	Contents     *content.Service
	Auth         *auth.Service
	Store        *storage.Container
}

// ProvideContainer builds the storage container for the configured strategy.
// The returned cleanup closes whatever the strategy keeps open.
func ProvideContainer(cfg *config.Config, logger *slog.Logger) (*storage.Container, func(), error) {
	switch cfg.Storage {
	case config.StorageFile:
		c := file.NewContainer(cfg.DataDir)
		return c, func() {}, nil
	case config.StorageBadger:
		c, err := badgerstore.NewContainer(filepath.Join(cfg.DataDir, "badger"), logger)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	default:
		return memory.NewContainer(), func() {}, nil
	}
}
