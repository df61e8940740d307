package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoginStatusLogout(t *testing.T) {
	cfg := testConfig(t)

	code, out := run(t, cfg, "", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Status: anonymous")

	code, out = run(t, cfg, "", "login", "admin@rgflow.com", "wrong")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "login error")

	// пароль читается из In, если не передан аргументом
	code, out = run(t, cfg, "123456\n", "login", "Admin@RGFlow.com")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Logged in as admin@rgflow.com")

	code, out = run(t, cfg, "", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "logged in as admin@rgflow.com")

	code, out = run(t, cfg, "", "logout")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Logged out")

	code, out = run(t, cfg, "", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "anonymous")
}

func TestLogout_Declined(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	cfg.AssumeYes = false
	code, out := run(t, cfg, "n\n", "logout")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Deseja realmente sair? [y/N]")
	assert.Contains(t, out, "Cancelado.")

	code, out = run(t, cfg, "", "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "logged in as")
}

func TestPages_RequireLogin(t *testing.T) {
	cfg := testConfig(t)
	for _, args := range [][]string{
		{"dashboard"}, {"tickets"}, {"tasks"}, {"docs"}, {"notifications"}, {"export-csv", "-"},
	} {
		code, out := run(t, cfg, "", args...)
		assert.Equal(t, 1, code, args)
		assert.Contains(t, out, "rgcli login", args)
	}
}

func TestTickets_Lifecycle(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	dir := t.TempDir()
	file := filepath.Join(dir, "contrato.txt")
	require.NoError(t, os.WriteFile(file, []byte("conteúdo do contrato"), 0o644))

	code, out := run(t, cfg, "", "ticket-add", "-client", "ACME", "-desc", "Revisão de contrato",
		"-type", "Jurídico", "-priority", "Alta", file)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "(1 anexos)")

	code, out = run(t, cfg, "", "ticket-add", "-desc", "sem cliente")
	assert.Equal(t, 2, code, out)

	code, out = run(t, cfg, "", "tickets", "acme")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "anexos: 1")

	code, out = run(t, cfg, "", "tickets", "inexistente")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Nenhum atendimento.")

	var id string
	withTestApp(t, cfg, func(app *bootstrap.App) {
		list, err := app.Services.Tickets.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		id = list[0].ID
	})

	outDir := t.TempDir()
	code, out = run(t, cfg, "", "ticket-files", id, outDir)
	require.Equal(t, 0, code, out)
	data, err := os.ReadFile(filepath.Join(outDir, "contrato.txt"))
	require.NoError(t, err)
	assert.Equal(t, "conteúdo do contrato", string(data))

	code, out = run(t, cfg, "", "export-csv", "-")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "id,client,description,created\n"))
	assert.Contains(t, out, `"ACME"`)

	code, out = run(t, cfg, "", "ticket-del", id)
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "tickets")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Nenhum atendimento.")
}

func TestTicketAdd_MissingFile(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	code, out := run(t, cfg, "", "ticket-add", "-client", "ACME", filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "nope.pdf")
}

func TestTasks_Lifecycle(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	code, out := run(t, cfg, "", "task-add", "-due", "2099-12-31", "-priority", "Média", "Ligar", "para", "cliente")
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "task-add", "-due", "31/12/2099", "x")
	assert.Equal(t, 1, code, out)
	assert.Contains(t, out, "due_date")

	code, _ = run(t, cfg, "", "task-add")
	assert.Equal(t, 2, code)

	var id string
	withTestApp(t, cfg, func(app *bootstrap.App) {
		list, err := app.Services.Tasks.List(context.Background(), "cliente")
		require.NoError(t, err)
		require.Len(t, list, 1)
		id = list[0].ID
		assert.Equal(t, "Ligar para cliente", list[0].Title)
	})

	code, out = run(t, cfg, "", "task-toggle", id)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "[x] Ligar para cliente")

	code, out = run(t, cfg, "", "tasks")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "progresso=100%")

	code, out = run(t, cfg, "", "task-toggle", "missing")
	assert.Equal(t, 1, code, out)

	code, out = run(t, cfg, "", "task-del", id)
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "tasks")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Nenhuma tarefa.")
}

func TestDocuments_UploadDownloadDelete(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	src := filepath.Join(t.TempDir(), "nota.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	code, out := run(t, cfg, "", "doc-upload", src)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "nota.txt (5 B)")

	code, _ = run(t, cfg, "", "doc-upload")
	assert.Equal(t, 2, code)

	code, out = run(t, cfg, "", "docs", "nota")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "nota.txt")

	var id string
	withTestApp(t, cfg, func(app *bootstrap.App) {
		list, err := app.Services.Documents.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		id = list[0].ID
	})

	dst := t.TempDir()
	code, out = run(t, cfg, "", "doc-download", id, dst)
	require.Equal(t, 0, code, out)
	data, err := os.ReadFile(filepath.Join(dst, "nota.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// повторная выгрузка не перезаписывает файл
	code, _ = run(t, cfg, "", "doc-download", id, dst)
	assert.Equal(t, 1, code)

	cfg.AssumeYes = false
	code, _ = run(t, cfg, "nao\n", "doc-del", id)
	assert.Equal(t, 1, code)
	code, out = run(t, cfg, "s\n", "doc-del", id)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Documento excluído.")
}

func TestNotifications_ListAndRead(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	code, out := run(t, cfg, "", "task-add", "Revisar")
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "notifications")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Tarefa Criada")
	assert.Contains(t, out, "Não lidas: 1")

	var id string
	withTestApp(t, cfg, func(app *bootstrap.App) {
		list, err := app.Services.Notifications.List(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, list)
		id = list[0].ID
	})

	code, out = run(t, cfg, "", "notification-read", id)
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "notifications")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Não lidas: 0")
}

func TestDashboardAndReport(t *testing.T) {
	cfg := testConfig(t)
	login(t, cfg)

	code, out := run(t, cfg, "", "ticket-add", "-client", "ACME")
	require.Equal(t, 0, code, out)
	code, out = run(t, cfg, "", "task-add", "Revisar")
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "", "dashboard")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Atendimentos: 1")
	assert.Contains(t, out, "Conclusão:    0%")

	html := filepath.Join(t.TempDir(), "r.html")
	code, out = run(t, cfg, "", "report", "-o", html)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "5 gráficos")
	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
}
