package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	chatclient "github.com/ryuvi/carchat/chat/client"
	corecmd "github.com/ryuvi/carchat/core/cmd"
	coreconfig "github.com/ryuvi/carchat/core/config"
	"github.com/ryuvi/carchat/core/logger"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Run the terminal chat client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(configFlag, runClient)
		},
	}
}

func runClient(ctx context.Context, cfg *coreconfig.Config) error {
	// The TUI owns stdout; logs go to stderr or the configured file.
	if err := logger.Init(cfg.Logging); err != nil {
		return err
	}

	conn, dialErr := chatclient.Dial(ctx, cfg.Client.ServerURL, cfg.Client.DialRetries)
	app := chatclient.NewApp(conn, cfg.Client.PollTimeout(), dialErr)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if conn != nil {
		_ = conn.Close()
	}
	return err
}
