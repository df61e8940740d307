package commands

import (
	"RGFlow/internal/cli/api"
	"RGFlow/internal/config"
	"context"
	"fmt"
	"strings"
)

type serverStatusCmd struct{}

func (serverStatusCmd) Name() string        { return "server-status" }
func (serverStatusCmd) Description() string { return "Check the RGFlow server and the given auth token" }
func (serverStatusCmd) Usage() string       { return "server-status [token]" }

// Run опрашивает /api/user/status на cfg.ServerURL.
func (serverStatusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	var token string
	if len(args) == 1 {
		token = args[0]
	}
	var st struct {
		Email  string `json:"email"`
		Logged bool   `json:"logged"`
	}
	url := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/status"
	if err := api.GetJSON(ctx, url, token, &st); err != nil {
		return err
	}
	if st.Logged {
		fmt.Fprintf(Out, "Server %s: up, logged in as %s\n", cfg.ServerURL, st.Email)
	} else {
		fmt.Fprintf(Out, "Server %s: up, anonymous\n", cfg.ServerURL)
	}
	return nil
}

func init() {
	RegisterCmd(serverStatusCmd{})
}
