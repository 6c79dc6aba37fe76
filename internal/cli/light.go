package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/lightswitch"
	"github.com/kylepfurey/FureyLib-sub005/internal/timeutil"
)

func lightCmd() *cobra.Command {
	var flicker time.Duration
	var step time.Duration
	var startOn bool

	c := &cobra.Command{
		Use:   "light [toggle|break|repair|wait:<dur> ...]",
		Short: "Simulate a light switch through a sequence of events",
		Example: `  fureylib light toggle break wait:1s repair toggle
  fureylib light --flicker 250ms break wait:2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"toggle", "toggle", "break", "wait:1s", "repair", "toggle"}
			}

			var sim time.Duration
			p := timeutil.NewPrinter(cmd.OutOrStdout(), "light", timeutil.WithElapsed(func() time.Duration { return sim }))

			var opts []lightswitch.Option
			if flicker > 0 {
				opts = append(opts, lightswitch.WithFlicker(flicker))
			}
			sw := lightswitch.New(startOn, opts...)
			sw.OnChange(func(lit bool) {
				p.Printf("lit=%t (state %s)", lit, sw.State())
			})

			for _, a := range args {
				switch ev, arg, _ := strings.Cut(strings.ToLower(a), ":"); ev {
				case "toggle":
					report(p, a, sw.Toggle())
				case "break":
					report(p, a, sw.Break())
				case "repair":
					report(p, a, sw.Repair())
				case "wait":
					d, err := time.ParseDuration(arg)
					if err != nil {
						return fmt.Errorf("%s: %w", a, err)
					}
					for left := d; left > 0; left -= step {
						dt := min(step, left)
						sim += dt
						sw.Update(dt)
					}
				default:
					return fmt.Errorf("unknown event %q", a)
				}
			}

			p.Printf("final state %s, lit=%t", sw.State(), sw.Lit())
			return nil
		},
	}

	c.Flags().DurationVar(&flicker, "flicker", 0, "Blink period while broken (0 disables)")
	c.Flags().DurationVar(&step, "step", 50*time.Millisecond, "Simulation step for wait events")
	c.Flags().BoolVar(&startOn, "on", false, "Start switched on")
	return c
}

func report(p *timeutil.Printer, event string, ok bool) {
	if !ok {
		p.Warn(event + " ignored")
	}
}
