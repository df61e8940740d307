// Package commands — подкоманды rgcli поверх локального хранилища RGFlow.
package commands

import (
	"RGFlow/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrUsage: неверные аргументы, диспетчер печатает строку Usage команды.
var ErrUsage = errors.New("usage")

// Command — подкоманда rgcli. Run получает аргументы без имени команды.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — вывод CLI; тесты подменяют его буфером.
var Out io.Writer = os.Stdout

// In — ввод для подтверждений и пароля.
var In io.Reader = os.Stdin

// Logger — логгер локального хранилища; main задаёт его через SetLogger.
var Logger = zap.NewNop().Sugar()

func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		Logger = l
	}
}

// RegisterCmd вызывается из init() файла с командой.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List — команды по алфавиту.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage собирает общий help: глобальные флаги и все команды.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("RGFlow CLI: atendimentos, tarefas e documentos no terminal\n\n")
	b.WriteString("Usage:\n  rgcli [-y] [-d <dsn>] [-dev] <command> [args]\n\n")
	b.WriteString("Flags:\n")
	b.WriteString("  -y       confirmar exclusões e logout sem perguntar\n")
	b.WriteString("  -d       DSN do banco local (padrão: <config dir>/rgflow/rgflow.db)\n")
	b.WriteString("  -dev     habilitar a conta de demonstração\n\n")
	b.WriteString("Commands:\n")
	for _, c := range List() {
		fmt.Fprintf(&b, "  %-44s %s\n", c.Usage(), c.Description())
	}
	return b.String()
}
