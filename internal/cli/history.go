package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ytget/yt-batch/internal/history"
)

func cmdHistory(g *globals) *cli.Command {
	var (
		limit   int64
		batchID string
	)

	return &cli.Command{
		Name:  "history",
		Usage: "List recent download outcomes",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Number of entries to show",
				Value:       history.DefaultRecentLimit,
				Destination: &limit,
			},
			&cli.StringFlag{
				Name:        "batch",
				Usage:       "Show every entry of one batch instead of the most recent ones",
				Destination: &batchID,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := history.Open(ctx, g.historyDB, g.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []history.Entry
			if batchID != "" {
				entries, err = store.ByBatch(ctx, batchID)
			} else {
				entries, err = store.Recent(ctx, int(limit))
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tBATCH\tSTATUS\tFORMAT\tQUALITY\tURL\tERROR")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.StartedAt.Format(time.DateTime), e.BatchID, e.Status, e.Format, e.Quality, e.URL, e.Error)
			}
			return tw.Flush()
		},
	}
}
