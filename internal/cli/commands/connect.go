package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type validateCmd struct{}

func (validateCmd) Name() string        { return "validate" }
func (validateCmd) Description() string { return "Проверить токен и показать расшаренный профиль" }
func (validateCmd) Usage() string       { return "validate <token>" }

func (validateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, "/api/nfc/validate/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	printJSON(body)
	return nil
}

type connectCmd struct{}

func (connectCmd) Name() string        { return "connect" }
func (connectCmd) Description() string { return "Подключиться к владельцу токена" }
func (connectCmd) Usage() string       { return "connect <token>" }

func (connectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodPost, "/api/nfc/connect/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Связь создана")
	printJSON(body)
	return nil
}

type connectionLine struct {
	ID              string `json:"id"`
	ConnectedUserID string `json:"connected_user_id"`
	ConnectionType  string `json:"connection_type"`
}

type connectionsCmd struct{}

func (connectionsCmd) Name() string        { return "connections" }
func (connectionsCmd) Description() string { return "Показать связи" }
func (connectionsCmd) Usage() string       { return "connections" }

func (connectionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, "/api/connections", nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}

	var list []connectionLine
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет связей")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- %s  user=%s  type=%s\n", c.ID, c.ConnectedUserID, c.ConnectionType)
	}
	return nil
}

type connectionDelCmd struct{}

func (connectionDelCmd) Name() string        { return "connection-del" }
func (connectionDelCmd) Description() string { return "Удалить связь" }
func (connectionDelCmd) Usage() string       { return "connection-del <connection-id>" }

func (connectionDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodDelete, "/api/connections/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Связь удалена")
	return nil
}

func init() {
	RegisterCmd(validateCmd{})
	RegisterCmd(connectCmd{})
	RegisterCmd(connectionsCmd{})
	RegisterCmd(connectionDelCmd{})
}
