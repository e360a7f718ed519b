package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/qkariin/queendom/internal/app"
	"github.com/qkariin/queendom/internal/cli"
	"github.com/qkariin/queendom/internal/config"
	"github.com/qkariin/queendom/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	rt, err := app.Open(cfg, nil, observers...)
	if err != nil {
		return err
	}
	defer rt.Close()

	a := &cli.App{
		Members:     rt.Members,
		Submissions: rt.Submissions,
		Kneel:       rt.Kneel,
		Promotion:   rt.Promotion,
		Tasks:       rt.Tasks,
		Config:      cfg,
		Location:    rt.Settings.Location,
		Logger:      logger,
	}

	// Forms and the kneeling screen need a terminal on stdin.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).Execute()
}
