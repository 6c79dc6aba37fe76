package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/timeutil"
)

func timeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "time",
		Short: "Duration formatting, stopwatch and countdown helpers",
	}
	c.AddCommand(timeFormatCmd(), timeParseCmd(), timeCountdownCmd())
	return c
}

func timeFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <duration>",
		Short: "Format a Go duration as m:ss or h:mm:ss (e.g. 90s -> 1:30)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), timeutil.FormatDuration(d))
			return nil
		},
	}
}

func timeParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <clock>",
		Short: "Parse m:ss or h:mm:ss into a duration (e.g. 1:30 -> 1m30s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := timeutil.ParseClock(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func timeCountdownCmd() *cobra.Command {
	var tick time.Duration

	c := &cobra.Command{
		Use:   "countdown <duration|clock>",
		Short: "Run a countdown timer, printing each tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tick <= 0 {
				return fmt.Errorf("--tick must be positive, got %s", tick)
			}
			d, err := time.ParseDuration(args[0])
			if err != nil {
				if d, err = timeutil.ParseClock(args[0]); err != nil {
					return err
				}
			}

			sw := timeutil.NewStopwatch(nil)
			sw.Start()
			p := timeutil.NewPrinter(cmd.OutOrStdout(), "countdown", timeutil.WithElapsed(sw.Elapsed))

			done := make(chan struct{})
			timer := timeutil.NewTimer(d, false, func() { close(done) })
			clock := timeutil.NewClock(time.Now)
			clock.Tick()

			ticker := time.NewTicker(tick)
			defer ticker.Stop()

			p.Printf("%s remaining", timeutil.FormatDuration(timer.Remaining()))
			for {
				select {
				case <-cmd.Context().Done():
					p.Warn("cancelled")
					return cmd.Context().Err()
				case <-done:
					p.Printf("done after %d frames", clock.Frames())
					return nil
				case <-ticker.C:
					timer.Update(clock.Tick())
					if timer.Running() {
						p.Printf("%s remaining", timeutil.FormatDuration(timer.Remaining()))
					}
				}
			}
		},
	}

	c.Flags().DurationVar(&tick, "tick", time.Second, "Print interval")
	return c
}
