//go:build wireinject
// +build wireinject

package di

import (
	"log/slog"

	"github.com/google/wire"

	"parley/config"
	"parley/internal/auth"
	"parley/internal/channel"
	"parley/internal/content"
	"parley/internal/message"
	"parley/internal/readstatus"
	"parley/internal/user"
	"parley/internal/userstatus"
)

func InitializeApp(cfg *config.Config, logger *slog.Logger) (*App, func(), error) {
	wire.Build(
		ProvideContainer,
		user.NewService,
		channel.NewService,
		message.NewService,
		readstatus.NewService,
		userstatus.NewService,
		content.NewService,
		auth.NewService,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
