package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/workspacefinder"
	"github.com/kylepfurey/FureyLib-sub005/internal/netdemo"
	"github.com/kylepfurey/FureyLib-sub005/internal/timeutil"
)

const maxTickRate = 1000

func netCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "net",
		Short: "Client/server networking demo over websockets",
	}
	c.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root for net settings (optional)")

	c.AddCommand(netServeCmd(&workspace), netClientCmd(&workspace))
	return c
}

// netConfig reads the net section of the workspace config, falling back to
// defaults outside a workspace.
func netConfig(workspace string) (domain.NetConfig, error) {
	root, err := resolveWorkspaceRoot(workspace)
	if err != nil {
		if strings.TrimSpace(workspace) != "" {
			return domain.NetConfig{}, err
		}
		return domain.DefaultConfig().Net, nil
	}
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return domain.NetConfig{}, err
	}
	return cfg.Net, nil
}

func netServeCmd(workspace *string) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := netConfig(*workspace)
			if err != nil {
				return err
			}
			if addr != "" {
				nc.Addr = addr
			}

			srv := netdemo.NewServer(netdemo.ServerConfigFrom(nc), logger.Component("netdemo"))
			srv.RegisterRPC("roll", func(_ context.Context, _ netdemo.Peer, args json.RawMessage) (any, error) {
				sides := 6
				if len(args) > 0 {
					if err := json.Unmarshal(args, &sides); err != nil {
						return nil, fmt.Errorf("roll: sides must be a number")
					}
				}
				if sides < 2 {
					return nil, fmt.Errorf("roll: need at least 2 sides")
				}
				return rand.IntN(sides) + 1, nil
			})
			srv.RegisterRPC("time", func(context.Context, netdemo.Peer, json.RawMessage) (any, error) {
				return time.Now().UTC().Format(time.RFC3339), nil
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s (ws path /ws, ctrl+c to stop)\n", nc.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to net.addr in fureylib.yaml)")
	return c
}

func netClientCmd(workspace *string) *cobra.Command {
	var url string
	var name string
	var duration time.Duration
	var chat string
	var radius float64

	c := &cobra.Command{
		Use:   "client",
		Short: "Join a demo server, move in a circle and print what other peers do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := netConfig(*workspace)
			if err != nil {
				return err
			}
			if url == "" {
				url = "ws://" + dialHost(nc.Addr) + "/ws"
			}
			if name == "" {
				name = defaultPlayerName()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			cl, err := netdemo.Dial(ctx, url, name,
				netdemo.WithLogger(logger.Component("netdemo")),
				netdemo.WithInterpolationDelay(nc.InterpolationDelay),
			)
			if err != nil {
				return err
			}
			defer cl.Close()

			clock := timeutil.NewClock(time.Now)
			p := timeutil.NewPrinter(cmd.OutOrStdout(), name, timeutil.WithElapsed(clock.Elapsed))
			p.Printf("joined as %s (%d peer(s), tick rate %d)", cl.ID(), len(cl.Peers()), cl.TickRate())

			var pong string
			rtt := timeutil.NewStopwatch(nil)
			rtt.Start()
			if err := cl.CallRPC(ctx, "ping", nil, &pong); err == nil {
				p.Printf("rpc ping -> %s in %s", pong, rtt.Elapsed().Round(time.Microsecond))
			}
			if chat != "" {
				if err := cl.SendChat(chat); err != nil {
					return err
				}
			}

			return runClientLoop(ctx, cl, p, clock, radius)
		},
	}

	c.Flags().StringVar(&url, "url", "", "Server websocket URL (defaults to ws://<net.addr>/ws)")
	c.Flags().StringVar(&name, "name", "", "Player name")
	c.Flags().DurationVar(&duration, "duration", 0, "Leave after this long (0 runs until ctrl+c)")
	c.Flags().StringVar(&chat, "chat", "", "Send a chat message after joining")
	c.Flags().Float64Var(&radius, "radius", 3, "Radius of the circle walked by this client")
	return c
}

func runClientLoop(ctx context.Context, cl *netdemo.Client, p *timeutil.Printer, clock *timeutil.Clock, radius float64) error {
	send := time.NewTicker(sendInterval(cl.TickRate()))
	defer send.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	clock.Tick()
	for {
		select {
		case <-ctx.Done():
			p.Print("leaving")
			return nil

		case env, ok := <-cl.Events():
			if !ok {
				if err := cl.Err(); err != nil {
					return err
				}
				p.Warn("server closed the connection")
				return nil
			}
			printEvent(p, env)

		case <-send.C:
			clock.Tick()
			angle := clock.Elapsed().Seconds()
			tr := netdemo.Transform{
				Position: domain.V3(radius*math.Cos(angle), 0, radius*math.Sin(angle)),
				Rotation: math.Mod(angle*180/math.Pi+90, 360),
			}
			if err := cl.SendTransform(tr); err != nil {
				return err
			}

		case <-report.C:
			for _, peer := range cl.Peers() {
				tr, ok := cl.Sample(peer.ID)
				if !ok {
					continue
				}
				p.Printf("%s at (%.2f, %.2f, %.2f) facing %.0f°", peer.Name,
					tr.Position.X, tr.Position.Y, tr.Position.Z, tr.Rotation)
			}
		}
	}
}

func printEvent(p *timeutil.Printer, env netdemo.Envelope) {
	switch env.Type {
	case netdemo.MsgSpawn:
		var peer netdemo.Peer
		if env.Decode(&peer) == nil {
			p.Printf("%s joined", peer.Name)
		}
	case netdemo.MsgDespawn:
		var d netdemo.Despawn
		if env.Decode(&d) == nil {
			p.Printf("%s left", d.ID)
		}
	case netdemo.MsgChat:
		var m netdemo.Chat
		if env.Decode(&m) == nil {
			p.Printf("<%s> %s", m.Name, m.Text)
		}
	case netdemo.MsgError:
		var m netdemo.ErrorMsg
		if env.Decode(&m) == nil {
			p.Error("server: " + m.Message)
		}
	}
}

// sendInterval converts a tick rate into a ticker period, capped at
// maxTickRate and defaulting to 20 Hz for a non-positive rate.
func sendInterval(tickRate int) time.Duration {
	switch {
	case tickRate <= 0:
		tickRate = 20
	case tickRate > maxTickRate:
		tickRate = maxTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// dialHost turns a listen address like ":7777" into a dialable host.
func dialHost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
