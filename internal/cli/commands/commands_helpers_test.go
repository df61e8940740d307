package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы локальная база создавалась в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// testConfig — dev-режим с демо-учёткой и отдельной базой в temp.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := withTempConfig(t)
	return &config.Config{
		DatabaseDSN:     filepath.Join(dir, "rgflow.db"),
		DevMode:         true,
		AssumeYes:       true,
		MaxAttachmentMB: 1,
	}
}

// run прогоняет команду через Dispatch с заданным вводом и возвращает код и вывод.
func run(t *testing.T, cfg *config.Config, input string, args ...string) (int, string) {
	t.Helper()
	oldOut, oldIn := Out, In
	var buf bytes.Buffer
	Out, In = &buf, strings.NewReader(input)
	defer func() { Out, In = oldOut, oldIn }()
	code := Dispatch(context.Background(), cfg, args)
	return code, buf.String()
}

func login(t *testing.T, cfg *config.Config) {
	t.Helper()
	code, out := run(t, cfg, "", "login", "admin@rgflow.com", "123456")
	require.Equal(t, 0, code, out)
}

// withTestApp открывает то же локальное приложение, что и команды.
func withTestApp(t *testing.T, cfg *config.Config, fn func(app *bootstrap.App)) {
	t.Helper()
	app, done, err := openApp(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = done() }()
	fn(app)
}
