package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/multitimer/internal/service"
	"github.com/jask/multitimer/internal/timers"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		specs    []string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Count timers down without the TUI",
		Long: `Runs the given timers headless, printing one line per timer on every tick.
Exits once every timer has expired, or on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(specs) == 0 {
				return errors.New("watch needs at least one --timer label=seconds")
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			reg, err := e.registry(specs)
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = e.cfg.Timers.TickInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, cmd.OutOrStdout(), reg, e.notifier(cmd.OutOrStdout()), timers.RealClock{}, interval)
		},
	}

	cmd.Flags().StringArrayVar(&specs, "timer", nil, "Timer to run as label=seconds (repeatable)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Tick interval (defaults to timers.tick_interval)")

	return cmd
}

// watch ticks reg until all timers have expired or ctx ends. Both count as a
// clean exit.
func watch(ctx context.Context, out io.Writer, reg *timers.Registry, notifier service.Notifier, clock timers.Clock, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	red := color.New(color.FgRed).SprintFunc()
	unhook := reg.OnExpire(func(e timers.Expiry) {
		fmt.Fprintf(out, "%s %s\n", red("finished"), e.Label)
		if notifier == nil {
			return
		}
		if err := notifier.Notify(ctx, e); err != nil {
			fmt.Fprintf(out, "%s %v\n", red("error:"), err)
		}
	})
	defer unhook()

	printTimers(out, reg.Timers())
	err := timers.Drive(ctx, clock, interval, func() {
		reg.Tick()
		list := reg.Timers()
		printTimers(out, list)
		if allExpired(list) {
			cancel()
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printTimers(out io.Writer, list []timers.Timer) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, t := range list {
		state := string(t.State())
		switch t.State() {
		case timers.StateRunning:
			state = green(state)
		case timers.StatePaused:
			state = yellow(state)
		case timers.StateExpired:
			state = red(state)
		}
		fmt.Fprintf(out, "%-20s %s  %s\n", t.Label, timers.FormatRemaining(t.Remaining), state)
	}
	fmt.Fprintln(out)
}

func allExpired(list []timers.Timer) bool {
	for _, t := range list {
		if t.State() != timers.StateExpired {
			return false
		}
	}
	return true
}
