package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func indexCommand(c *cli.Context) error {
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
	s := engine.Stats()
	w := c.App.Writer
	fmt.Fprintf(w, "articles:    %d\n", s.Articles)
	fmt.Fprintf(w, "skipped:     %d\n", s.Skipped)
	fmt.Fprintf(w, "vocabulary:  %d\n", s.Vocabulary)
	fmt.Fprintf(w, "triples:     %d\n", s.Triples)
	fmt.Fprintf(w, "trie nodes:  %d (terminals %d, leaves %d, max depth %d, avg children %.2f)\n",
		s.Trie.Nodes, s.Trie.Terminals, s.Trie.Leaves, s.Trie.MaxDepth, s.Trie.AvgChildren)
	fmt.Fprintf(w, "build time:  %s\n", s.Duration.Round(time.Millisecond))
	return nil
}

func searchCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("a query is required")
	}
	kind, err := executor.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}

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
	ex, err := a.executor(engine)
	if err != nil {
		return err
	}
	titles, err := ex.Search(ctx, executor.Query{Text: text, Kind: kind, Variant: c.String("variant")})
	if err != nil {
		return err
	}
	for _, t := range titles {
		fmt.Fprintln(c.App.Writer, t)
	}
	return nil
}

func shellCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, c)
	if err != nil {
		return err
	}
	defer a.close()

	var built atomic.Bool
	if a.cfg.Metrics.Enabled {
		shutdown := metrics.StartServer(a.cfg.Metrics.Port, a.checker(&built).Handler())
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	engine, err := a.build(ctx)
	if err != nil {
		return err
	}
	built.Store(true)
	ex, err := a.executor(engine)
	if err != nil {
		return err
	}
	return runShell(ctx, ex, os.Stdin, c.App.Writer)
}

type searcher interface {
	Search(ctx context.Context, q executor.Query) ([]string, error)
}

// runShell answers one query per input line until EOF or cancellation.
// Bad lines and failed queries are reported and the loop continues.
func runShell(ctx context.Context, s searcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "quit" || line == "exit":
			return nil
		default:
			answer(ctx, s, line, out)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func answer(ctx context.Context, s searcher, line string, out io.Writer) {
	q, err := parseLine(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	start := time.Now()
	titles, err := s.Search(ctx, q)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	for _, t := range titles {
		fmt.Fprintln(out, t)
	}
	fmt.Fprintf(out, "(%d results in %s)\n", len(titles), time.Since(start).Round(time.Microsecond))
}
