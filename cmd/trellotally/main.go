package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/trellotally/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("trellotally", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts app.Options
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/trellotally/config.toml)")
	flags.StringVar(&opts.CacheBackend, "cache", "", "cache backend: file, sqlite, redis or memory (overrides config)")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path (overrides config)")
	flags.BoolVar(&opts.Print, "print", false, "print the session to stdout instead of starting the TUI")
	flags.StringVar(&opts.BoardID, "board", "", "board id to open (with --print)")
	flags.StringVar(&opts.ListID, "list", "", "list id to open (with --print)")
	flags.StringVar(&opts.Format, "format", app.FormatText, "output format for --print: text or yaml")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: trellotally [flags]\n\nBrowse Trello boards and total up card prices.\n\nFlags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if rest := flags.Args(); len(rest) > 0 {
		fmt.Fprintf(stderr, "trellotally: unexpected argument %q\n", rest[0])
		return 2
	}
	if !opts.Print && (opts.BoardID != "" || opts.ListID != "") {
		fmt.Fprintln(stderr, "trellotally: --board and --list require --print")
		return 2
	}
	opts.Stdout = stdout

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "trellotally: %v\n", err)
		return 1
	}
	return 0
}
