package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/container"
	"github.com/kylepfurey/FureyLib-sub005/internal/timeutil"
)

func queueCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "queue",
		Short: "Container demos (queue, priority queue, dictionary)",
	}
	c.AddCommand(queueDemoCmd())
	return c
}

func queueDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [item[:priority] ...]",
		Short: "Feed items through a queue, a priority queue and a dictionary",
		Example: `  fureylib queue demo
  fureylib queue demo boss:1 loot:5 chest:3 door:3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"spawn:2", "music:5", "save:1", "ui:5", "input:0"}
			}

			type entry struct {
				name     string
				priority float64
			}
			entries := make([]entry, 0, len(args))
			for _, a := range args {
				name, prio, found := strings.Cut(a, ":")
				e := entry{name: name}
				if found {
					p, err := strconv.ParseFloat(prio, 64)
					if err != nil {
						return fmt.Errorf("item %q: invalid priority: %w", a, err)
					}
					e.priority = p
				}
				entries = append(entries, e)
			}

			p := timeutil.NewPrinter(cmd.OutOrStdout(), "queue")

			q := container.NewQueue[string]()
			pq := container.NewPriorityQueue[string]()
			counts := container.NewDictionary[string, int]()
			for _, e := range entries {
				q.Enqueue(e.name)
				pq.Enqueue(e.name, e.priority)
				counts.Set(e.name, counts.GetOrDefault(e.name, 0)+1)
			}

			p.Printf("queue (FIFO): %s", strings.Join(q.Slice(), " -> "))
			p.Printf("priority queue (ascending, FIFO on ties): %s", strings.Join(pq.Slice(), " -> "))

			if top, ok := pq.PeekPriority(); ok {
				p.Printf("lowest priority: %g", top)
			}
			if last, ok := pq.DequeueMax(); ok {
				p.Printf("dequeue max: %s", last)
			}
			var order []string
			for !pq.IsEmpty() {
				v, _ := pq.Dequeue()
				order = append(order, v)
			}
			p.Printf("drained: %s", strings.Join(order, ", "))

			for k, n := range counts.All() {
				p.Printf("seen %s x%d", k, n)
			}
			if _, ok := q.Dequeue(); ok && q.Len() > 0 {
				front, _ := q.Peek()
				p.Printf("after one dequeue the front is %s (%d left)", front, q.Len())
			}
			return nil
		},
	}
}
