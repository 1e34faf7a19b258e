package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/multitimer/internal/service"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		limit int
		wipe  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished timers",
		Long:  `Lists expiries recorded in the journal, newest first. Use --clear to wipe it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			svc := &service.HistoryService{Expiries: e.expiries}
			if wipe {
				n, err := svc.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", n)
				return nil
			}
			return printHistory(cmd.Context(), cmd.OutOrStdout(), svc, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&wipe, "clear", false, "Delete the journal")

	return cmd
}

func printHistory(ctx context.Context, out io.Writer, svc *service.HistoryService, limit int) error {
	list, err := svc.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No finished timers yet")
		return nil
	}
	total, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d entries\n", len(list), total)

	cyan := color.New(color.FgCyan).SprintFunc()
	for _, e := range list {
		fmt.Fprintf(out, "%s  %s\n", cyan(e.ExpiredAt.Local().Format("2006-01-02 15:04:05")), e.Label)
	}
	return nil
}
