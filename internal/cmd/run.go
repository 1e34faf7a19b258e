package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/multitimer/internal/tui"
)

// RunTUI returns the RunE for the root command: the interactive timer screen.
// It reads the --timer flag registered by the caller.
func RunTUI(cmd *cobra.Command, args []string) error {
	specs, _ := cmd.Flags().GetStringArray("timer")

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	reg, err := e.registry(specs)
	if err != nil {
		return err
	}

	app := tui.New(cmd.Context(), tui.Options{
		Registry:       reg,
		Notifier:       e.notifier(cmd.ErrOrStderr()),
		TickInterval:   e.cfg.Timers.TickInterval,
		DefaultSeconds: e.cfg.Timers.DefaultSeconds,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
