package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/boolean"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/parser"
	"github.com/urfave/cli/v2"
)

func crosscheckCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, c)
	if err != nil {
		return err
	}
	defer a.close()

	engine, err := a.build(ctx)
	if err != nil {
		return err
	}
	ev := boolean.New(engine.Lists, engine.Bits)
	rng := rand.New(rand.NewSource(c.Int64("seed")))
	n := crosscheck(ev, rng, engine.Lists.Terms(), c.Int("queries"), c.Int("depth"), c.App.Writer)
	if n > 0 {
		return fmt.Errorf("%d strategy disagreements", n)
	}
	return nil
}

// crosscheck evaluates random queries under every strategy and reports each
// one whose result differs from Naive. It returns the number of
// disagreements.
func crosscheck(ev *boolean.Evaluator, rng *rand.Rand, vocabulary []string, queries, depth int, out io.Writer) int {
	strategies := boolean.Strategies()
	disagreements := 0
	for i := 0; i < queries; i++ {
		q := parser.Random(rng, vocabulary, depth)
		want := ev.IDs(q, boolean.Naive)
		for _, s := range strategies {
			if s == boolean.Naive {
				continue
			}
			if got := ev.IDs(q, s); !slices.Equal(want, got) {
				disagreements++
				fmt.Fprintf(out, "%s: %d results, Naive: %d results: %s\n", s, len(got), len(want), q)
			}
		}
	}
	fmt.Fprintf(out, "%d queries of depth %d, %d disagreements\n", queries, depth, disagreements)
	return disagreements
}
