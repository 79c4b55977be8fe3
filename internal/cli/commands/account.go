package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Проверить соединение и авторизацию" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, "/api/profiles?include_connections=false", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		fmt.Fprintln(Out, "Status: anonymous (выполните login или auth)")
		return nil
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Status: authorized, профилей: %d\n", len(list))
	return nil
}

type accountDelCmd struct{}

func (accountDelCmd) Name() string { return "account-delete" }
func (accountDelCmd) Description() string {
	return "Удалить все данные аккаунта (подтверждение: --yes)"
}
func (accountDelCmd) Usage() string { return "account-delete --yes" }

func (accountDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] != "--yes" {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodDelete, "/api/user/account", nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Данные аккаунта удалены")
	return nil
}

func init() {
	RegisterCmd(statusCmd{})
	RegisterCmd(accountDelCmd{})
}
