// Copyright 2025 Beyond Binary
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine, flags and real env still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "buddeee",
		Usage: "Event discovery API with an AI chat assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the Buddeee API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Address to listen on",
						Value:   ":3000",
						EnvVars: []string{"BUDDEEE_ADDR"},
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Postgres connection string",
						Required: true,
						EnvVars:  []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "OpenAI-compatible service host URL for both embedding and generation",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"BUDDEEE_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"BUDDEEE_EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "generator-model",
						Usage:   "Generation model name",
						Value:   "qwen2.5:3b",
						EnvVars: []string{"BUDDEEE_GENERATOR_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "API token for the AI service",
						Value:   "none",
						EnvVars: []string{"BUDDEEE_API_TOKEN"},
					},
					&cli.DurationFlag{
						Name:    "generation-timeout",
						Usage:   "Maximum time for a single chat generation call (0 disables)",
						Value:   30 * time.Second,
						EnvVars: []string{"BUDDEEE_GENERATION_TIMEOUT"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
