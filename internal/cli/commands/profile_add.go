package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"context"
	"fmt"
	"net/http"
)

type profileAddCmd struct{}

func (profileAddCmd) Name() string        { return "profile-add" }
func (profileAddCmd) Description() string { return "Создать профиль указанного типа" }
func (profileAddCmd) Usage() string {
	return "profile-add <type> name=<name> [field=value ...]"
}

func (profileAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload, err := parseKV(args[1:])
	if err != nil {
		return err
	}

	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodPost, "/api/profiles/"+args[0], payload)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Профиль создан")
	printJSON(body)
	return nil
}

type profileEditCmd struct{}

func (profileEditCmd) Name() string        { return "profile-edit" }
func (profileEditCmd) Description() string { return "Частично обновить профиль" }
func (profileEditCmd) Usage() string {
	return "profile-edit <type> <profile-id> field=value [field=value ...]"
}

func (profileEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	payload, err := parseKV(args[2:])
	if err != nil {
		return err
	}

	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodPut, "/api/profiles/"+args[0]+"/"+args[1], payload)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Профиль обновлён")
	printJSON(body)
	return nil
}

type profileDelCmd struct{}

func (profileDelCmd) Name() string        { return "profile-del" }
func (profileDelCmd) Description() string { return "Удалить профиль с расширением и токенами" }
func (profileDelCmd) Usage() string       { return "profile-del <profile-id>" }

func (profileDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodDelete, "/api/profiles/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Профиль удалён")
	return nil
}

func init() {
	RegisterCmd(profileAddCmd{})
	RegisterCmd(profileEditCmd{})
	RegisterCmd(profileDelCmd{})
}
