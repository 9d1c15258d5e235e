package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/smith3v/scripture-vocab/pkg/config"
	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/logger"
)

const usage = `usage: scripture-vocab [-config path] <command> [flags]

commands:
  list      print the vocabulary list for a range, preset or textbook
  parse     print occurrences matching morphology filters
  queue     print the due and new queues for a list
  study     review a list interactively
  review    record one answer
  stats     summarize recent study
  cleanup   close abandoned study runs
  export    write study progress as CSV
  define    set or clear a custom gloss
`

type app struct {
	corpus *corpus.Corpus
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"list":    runList,
	"parse":   runParse,
	"queue":   runQueue,
	"study":   runStudy,
	"review":  runReview,
	"stats":   runStats,
	"cleanup": runCleanup,
	"export":  runExport,
	"define":  runDefine,
}

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadConfig(*configPath); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	c, err := loadCorpus(config.AppConfig.Corpus)
	if err != nil {
		logger.Warn("corpus loaded with errors", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, &app{corpus: c}, flag.Args()[1:]); err != nil {
		logger.Error("command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func loadCorpus(cfg config.CorpusConfig) (*corpus.Corpus, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return corpus.Empty(), err
	}
	return corpus.Load(os.DirFS(root), corpus.Sources{
		GreekText:     cfg.GreekText,
		GreekLexicon:  cfg.GreekLexicon,
		HebrewText:    cfg.HebrewText,
		HebrewLexicon: cfg.HebrewLexicon,
		Textbooks:     cfg.Textbooks,
	})
}
