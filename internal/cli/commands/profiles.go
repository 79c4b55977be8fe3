package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// profileLine — поля списка, которые печатает CLI.
type profileLine struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	IsOwn          bool   `json:"is_own"`
	ConnectionType string `json:"connection_type"`
}

type profilesCmd struct{}

func (profilesCmd) Name() string        { return "profiles" }
func (profilesCmd) Description() string { return "Показать профили (own — только свои)" }
func (profilesCmd) Usage() string       { return "profiles [own]" }

func (profilesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	path := "/api/profiles"
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "own":
		path += "?include_connections=false"
	default:
		return ErrUsage
	}

	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}

	var list []profileLine
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет профилей")
		return nil
	}
	for _, p := range list {
		mark := "own"
		if !p.IsOwn {
			mark = "via " + p.ConnectionType
		}
		fmt.Fprintf(Out, "- %s  type=%s  name=%s  (%s)\n", p.ID, p.Type, p.Name, mark)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type profileGetCmd struct{}

func (profileGetCmd) Name() string        { return "profile-get" }
func (profileGetCmd) Description() string { return "Показать профиль целиком" }
func (profileGetCmd) Usage() string       { return "profile-get <profile-id>" }

func (profileGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := newClient(cfg).DoJSON(ctx, http.MethodGet, "/api/profiles/"+args[0], nil)
	if err != nil {
		return err
	}
	if err := api.AsError(resp, body); err != nil {
		return err
	}
	printJSON(body)
	return nil
}

// printJSON печатает тело ответа с отступами.
func printJSON(body []byte) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Fprintln(Out, string(body))
		return
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(Out, string(body))
		return
	}
	fmt.Fprintln(Out, string(pretty))
}

func init() {
	RegisterCmd(profilesCmd{})
	RegisterCmd(profileGetCmd{})
}
