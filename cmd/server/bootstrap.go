package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"parley/internal/auth"
	"parley/internal/channel"
	"parley/internal/content"
	"parley/internal/di"
	"parley/internal/message"
	"parley/internal/user"
)

// bootstrap exercises the core end to end: seed users, one public and one
// private channel, and a message with an attachment, then verify a login.
// On a durable backend a second run finds the seed users already present
// and skips seeding.
func bootstrap(ctx context.Context, app *di.App, logger *slog.Logger) error {
	existing, err := app.Users.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("existing users found, skipping seed", "count", len(existing))
		return nil
	}

	alice, err := app.Users.Create(ctx, user.CreateRequest{
		Username: "alice",
		Email:    "alice@parley.dev",
		Password: "c0rrect-horse-battery!",
		Profile: &content.CreateRequest{
			FileName:    "alice.png",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		},
	})
	if err != nil {
		return err
	}
	bob, err := app.Users.Create(ctx, user.CreateRequest{
		Username: "bob",
		Email:    "bob@parley.dev",
		Password: "st4ple-tr0mbone-kite!",
	})
	if err != nil {
		return err
	}

	general, err := app.Channels.CreatePublic(ctx, channel.CreatePublicRequest{
		Name:        "general",
		Description: "everyone welcome",
	})
	if err != nil {
		return err
	}
	direct, err := app.Channels.CreatePrivate(ctx, channel.CreatePrivateRequest{
		ParticipantIDs: []uuid.UUID{alice.ID, bob.ID},
	})
	if err != nil {
		return err
	}
	logger.Info("seeded private channel", "channel_id", direct.ID, "participants", len(direct.ParticipantIDs))

	msg, err := app.Messages.Create(ctx, message.CreateRequest{
		Content:   "welcome aboard",
		ChannelID: general.ID,
		AuthorID:  alice.ID,
		Attachments: []content.CreateRequest{{
			FileName:    "handbook.pdf",
			ContentType: "application/pdf",
			Data:        []byte{0x25, 0x50, 0x44, 0x46},
		}},
	})
	if err != nil {
		return err
	}
	logger.Info("seeded message", "message_id", msg.ID, "channel", general.Name)

	resp, err := app.Auth.Login(ctx, auth.LoginRequest{Username: "bob", Password: "st4ple-tr0mbone-kite!"})
	if err != nil {
		return err
	}
	logger.Info("login verified", "user_id", resp.ID, "online", resp.Online)

	// A throwaway channel demonstrates the delete cascade: its message and
	// attachment go with it, the seed data stays.
	scratch, err := app.Channels.CreatePublic(ctx, channel.CreatePublicRequest{Name: "scratch"})
	if err != nil {
		return err
	}
	if _, err := app.Messages.Create(ctx, message.CreateRequest{
		Content:   "short-lived",
		ChannelID: scratch.ID,
		AuthorID:  bob.ID,
		Attachments: []content.CreateRequest{{
			FileName:    "note.txt",
			ContentType: "text/plain",
			Data:        []byte("gone with the channel"),
		}},
	}); err != nil {
		return err
	}
	if err := app.Channels.Delete(ctx, scratch.ID); err != nil {
		return err
	}
	logger.Info("cascade delete verified", "channel_id", scratch.ID)

	return nil
}
