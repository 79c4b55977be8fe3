package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"TapShare/internal/config"
)

// newTestConfig собирает конфигурацию с токеном во временном файле,
// чтобы тесты не трогали каталог пользователя.
func newTestConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL:  serverURL,
		AuthSecret: "test-secret",
		TokenFile:  filepath.Join(t.TempDir(), "auth_token"),
	}
}

// captureOut перенаправляет вывод команд в буфер на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := Out
	Out = buf
	t.Cleanup(func() { Out = prev })
	return buf
}
