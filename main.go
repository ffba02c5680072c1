package main

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/accompanist/cmd"
	"github.com/jsphweid/accompanist/config"
	"github.com/joho/godotenv"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env: %v", err)
	}

	cfg := config.Load()
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "accompanist@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		}
	}

	err := cmd.Execute()
	sentry.Flush(sentryFlushTimeout)
	if err != nil {
		os.Exit(1)
	}
}
