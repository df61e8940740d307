// Package prompt — вопросы пользователю в терминале: подтверждения и ввод пароля.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer спрашивает "[y/N]" и читает ответ построчно из In.
// AssumeYes отвечает "да" без вопроса (флаг -y).
type Confirmer struct {
	In        *bufio.Reader
	Out       io.Writer
	AssumeYes bool
}

func NewConfirmer(in io.Reader, out io.Writer, assumeYes bool) *Confirmer {
	return &Confirmer{In: bufio.NewReader(in), Out: out, AssumeYes: assumeYes}
}

func (c *Confirmer) Confirm(ctx context.Context, question string) bool {
	if c.AssumeYes {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(c.Out, "%s [y/N]: ", question)
	line, err := c.In.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// ReadPassword читает пароль без эха, если in — терминал; иначе читает строку как есть.
func ReadPassword(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
