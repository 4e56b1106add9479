package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/poiesic/litsearch"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/literature"
	"github.com/poiesic/litsearch/pipeline"
	"github.com/poiesic/litsearch/rerank"
	"github.com/urfave/cli/v2"
)

var errMissingQuery = errors.New("a query is required")

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Reformulate a research question, retrieve and rank matching articles",
		ArgsUsage: "<question>",
		Action:    searchAction,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "top-k",
				Aliases: []string{"k"},
				Usage:   "Maximum number of ranked results",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Minimum cosine similarity for a result",
			},
			&cli.Float64Flag{
				Name:  "title-weight",
				Usage: "Weight of the title in the article embedding",
			},
			&cli.Float64Flag{
				Name:  "abstract-weight",
				Usage: "Weight of the abstract in the article embedding",
			},
			&cli.IntFlag{
				Name:  "from-year",
				Usage: "Earliest publication year",
			},
			&cli.IntFlag{
				Name:  "to-year",
				Usage: "Latest publication year",
			},
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Publication type to keep, such as \"Review\" (repeatable)",
			},
			&cli.IntFlag{
				Name:  "max-fetch",
				Usage: "Most identifiers requested from the index",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Requester stored with the search record",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the outcome as JSON",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Print every pipeline stage to stderr",
			},
		},
	}
}

func searchAction(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return errMissingQuery
	}

	filter := literature.Filter{
		FromYear:         c.Int("from-year"),
		ToYear:           c.Int("to-year"),
		PublicationTypes: c.StringSlice("type"),
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("max-fetch") {
		cfg.Pipeline.MaxFetch = c.Int("max-fetch")
	}

	var ranking rerank.Overrides
	if c.IsSet("top-k") {
		v := c.Int("top-k")
		ranking.TopK = &v
	}
	if c.IsSet("threshold") {
		v := c.Float64("threshold")
		ranking.Threshold = &v
	}
	if c.IsSet("title-weight") {
		v := c.Float64("title-weight")
		ranking.TitleWeight = &v
	}
	if c.IsSet("abstract-weight") {
		v := c.Float64("abstract-weight")
		ranking.AbstractWeight = &v
	}

	svc, err := litsearch.NewService("", litsearch.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	req := pipeline.Request{
		Query:     question,
		Requester: c.String("user"),
		Filter:    filter,
		Ranking:   ranking,
	}

	var outcome core.Outcome
	if c.Bool("trace") {
		outcome = svc.SearchWithMonitor(ctx, req, newTraceMonitor(c.App.ErrWriter))
	} else {
		outcome = svc.Search(ctx, req)
	}

	if c.Bool("json") {
		err = writeOutcomeJSON(c.App.Writer, outcome)
	} else {
		err = renderOutcome(c.App.Writer, outcome)
	}
	if err != nil {
		return err
	}
	if outcome.Status == core.OutcomeFailure {
		return cli.Exit(outcome.Message, 1)
	}
	return nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List stored searches, newest first",
		Action: historyAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Only show searches by this requester",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of searches to show",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the records as JSON",
			},
		},
	}
}

func historyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc, err := litsearch.NewService("", litsearch.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer svc.Close()

	records, err := listRecords(c.Context, svc, c.String("user"), c.Int("limit"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		if records == nil {
			records = []*core.SearchRecord{}
		}
		return writeJSON(c.App.Writer, records)
	}
	return renderHistory(c.App.Writer, records)
}

func listRecords(ctx context.Context, svc *litsearch.Service, user string, limit int) ([]*core.SearchRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if user == "" {
		return svc.Recent(ctx, limit)
	}
	return svc.History(ctx, user, limit)
}
