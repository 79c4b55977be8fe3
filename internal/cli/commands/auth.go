package commands

import (
	"context"
	"fmt"
	"time"

	fsrepo "TapShare/internal/cli/repo/fs"
	"TapShare/internal/config"
	"TapShare/internal/middleware"
)

type authCmd struct{}

func (authCmd) Name() string        { return "auth" }
func (authCmd) Description() string { return "Сохранить JWT, выданный identity provider" }
func (authCmd) Usage() string       { return "auth <jwt>" }

func (authCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Save(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Token saved")
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string { return "login" }
func (loginCmd) Description() string {
	return "Выпустить dev-токен локально (нужен AUTH_SECRET сервера)"
}
func (loginCmd) Usage() string { return "login <user-id>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := middleware.NewAccessToken(cfg.AuthSecret, args[0], 24*time.Hour)
	if err != nil {
		return err
	}
	if err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Save(token); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in as", args[0])
	return nil
}

func init() {
	RegisterCmd(authCmd{})
	RegisterCmd(loginCmd{})
}
