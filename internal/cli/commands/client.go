package commands

import (
	"TapShare/internal/cli/api"
	"TapShare/internal/config"
	"fmt"
	"strings"
)

// newClient собирает HTTP-клиента из конфигурации, подхватывая
// сохранённый auth-токен.
func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL, cfg.TokenFile)
}

// parseKV разбирает аргументы вида key=value в JSON-объект запроса.
func parseKV(args []string) (map[string]any, error) {
	m := map[string]any{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		m[k] = v
	}
	return m, nil
}
