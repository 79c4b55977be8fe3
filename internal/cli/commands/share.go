package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type tokenResponse struct {
	ID          string     `json:"id"`
	Token       string     `json:"token"`
	ProfileType string     `json:"profile_type"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (t tokenResponse) expiry() string {
	if t.ExpiresAt == nil {
		return "бессрочный"
	}
	return t.ExpiresAt.Format(time.RFC3339)
}

type shareCmd struct{}

func (shareCmd) Name() string { return "share" }
func (shareCmd) Description() string {
	return "Выпустить NFC-токен на тип профиля (forever — бессрочный)"
}
func (shareCmd) Usage() string { return "share <type> [ttl-minutes|forever]" }

func (shareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}

	payload := map[string]any{"profile_type": args[0]}
	if len(args) == 2 {
		if args[1] == "forever" {
			payload["never_expires"] = true
		} else {
			min, err := strconv.Atoi(args[1])
			if err != nil || min <= 0 {
				return ErrUsage
			}
			payload["expires_at"] = time.Now().UTC().Add(time.Duration(min) * time.Minute)
		}
	}

	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodPost, "/api/nfc/generate", payload)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Токен: %s\nТип: %s\nДействует до: %s\n", tok.Token, tok.ProfileType, tok.expiry())
	return nil
}

type tokensCmd struct{}

func (tokensCmd) Name() string        { return "tokens" }
func (tokensCmd) Description() string { return "Показать активные NFC-токены" }
func (tokensCmd) Usage() string       { return "tokens" }

func (tokensCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, "/api/nfc/tokens", nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}

	var list []tokenResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет активных токенов")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(Out, "- %s  type=%s  token=%s  до: %s\n", t.ID, t.ProfileType, t.Token, t.expiry())
	}
	return nil
}

type revokeCmd struct{}

func (revokeCmd) Name() string        { return "revoke" }
func (revokeCmd) Description() string { return "Отозвать NFC-токен" }
func (revokeCmd) Usage() string       { return "revoke <token-id>" }

func (revokeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodDelete, "/api/nfc/tokens/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Токен отозван")
	return nil
}

func init() {
	RegisterCmd(shareCmd{})
	RegisterCmd(tokensCmd{})
	RegisterCmd(revokeCmd{})
}
