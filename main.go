// userstore is a configuration check tool for the database-backed
// user-storage provider. It reads the provider configuration from the
// environment, runs the same validation the IAM host runs when an
// administrator saves the component (required fields, template check,
// live connectivity probe), and can optionally resolve one username
// end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-authgate/userstore/internal/version"
	"github.com/go-authgate/userstore/sqlstore"
	"github.com/go-authgate/userstore/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type cliSession struct {
	ctx context.Context
}

func (s cliSession) Context() context.Context { return s.ctx }

type cliRealm struct{}

func (cliRealm) Name() string { return "cli" }

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	envFile := flag.String("env", ".env", "Environment file to load before reading configuration")
	lookup := flag.String("lookup", "", "Resolve this username through a freshly created provider")
	timeout := flag.Duration("timeout", 10*time.Second, "Overall timeout for probe and lookup")
	debug := flag.Bool("debug", false, "Verbose logging, including lookup failure causes")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	// Load the env file if present (ignore error if not found)
	_ = godotenv.Load(*envFile)

	cfg := &storage.ComponentConfig{
		ID: uuid.New().String(),
		Config: map[string]string{
			sqlstore.ConfigURL:      os.Getenv("USERSTORE_URL"),
			sqlstore.ConfigUsername: os.Getenv("USERSTORE_USERNAME"),
			sqlstore.ConfigPassword: os.Getenv("USERSTORE_PASSWORD"),
			sqlstore.ConfigSQL:      os.Getenv("USERSTORE_SQL"),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	factory := sqlstore.NewFactory(sqlstore.WithDebug(*debug))
	if err := factory.ValidateConfiguration(ctx, cfg); err != nil {
		log.Fatalf("[CLI] configuration invalid: %v", err)
	}
	log.Printf("[CLI] configuration valid, database reachable")

	if *lookup == "" {
		return
	}

	provider, err := factory.Create(cliSession{ctx: ctx}, cfg)
	if err != nil {
		log.Fatalf("[CLI] provider activation failed: %v", err)
	}
	defer provider.Close()

	user, err := provider.GetUserByUsername(ctx, cliRealm{}, *lookup)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Printf("[CLI] no identity for %q", *lookup)
			os.Exit(1)
		}
		log.Fatalf("[CLI] lookup failed: %v", err)
	}
	log.Printf("[CLI] resolved %q -> %s", user.Username(), user.ID())
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `userstore - configuration check for the SQL user-storage provider

Usage:
  userstore [flags]

Configuration (environment, ${VAR} references are expanded):
  USERSTORE_URL       Database connection URL (postgres://, mysql://, sqlite://)
  USERSTORE_USERNAME  Database connection user
  USERSTORE_PASSWORD  Database connection password
  USERSTORE_SQL       User lookup SQL template with a ${username} placeholder

Flags:
`)
	flag.PrintDefaults()
}
