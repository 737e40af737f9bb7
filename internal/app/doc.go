// Package app is the composition root for trellotally.
//
// Run loads the config, opens the log file and the cache backend, builds the
// Trello client and the pricing workflow, then either starts the TUI or,
// with Options.Print set, renders the session once to stdout as text or
// YAML.
//
// Startup order:
//
//  1. config.Load (TOML or YAML), then the --cache override
//  2. logging.Open on the configured log file
//  3. cache.Open for the selected backend (file, sqlite, redis, memory)
//  4. trello.NewClient with the configured credentials
//  5. workflow.New over the remote source and the cache
//  6. ui.Run, or printSession for headless output
package app
