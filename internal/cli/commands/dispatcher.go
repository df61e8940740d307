package commands

import (
	"RGFlow/internal/config"
	"RGFlow/internal/service"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Dispatch запускает команду из args и возвращает код выхода:
// 0 успех, 1 ошибка или отказ от подтверждения, 2 неверный вызов.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if wantsHelp(os.Args[1:]) {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 0
	}
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	case errors.Is(err, service.ErrNotConfirmed):
		fmt.Fprintln(Out, "Cancelado.")
		return 1
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return 1
	}
}

// help: rgcli help [command]
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 0
	}
	if c, ok := Get(args[0]); ok {
		fmt.Fprintf(Out, "Usage: %s\n%s\n", c.Usage(), c.Description())
		return 0
	}
	unknown(args[0])
	return 2
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
	fmt.Fprint(Out, FormatGlobalUsage())
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}
