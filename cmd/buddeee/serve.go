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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/beyondbinary/buddeee/ai"
	"github.com/beyondbinary/buddeee/ai/openai"
	"github.com/beyondbinary/buddeee/chatbot"
	"github.com/beyondbinary/buddeee/httpapi"
	"github.com/beyondbinary/buddeee/index"
	"github.com/beyondbinary/buddeee/storage/postgres"
)

const shutdownGrace = 10 * time.Second

func serveCommand(c *cli.Context) error {
	ctx := c.Context
	logger := slog.Default().With("component", "serve")

	backend, err := postgres.OpenBackend(ctx, c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	events, err := postgres.NewEventRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create event repository: %w", err)
	}
	users, err := postgres.NewUserRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create user repository: %w", err)
	}
	interactions, err := postgres.NewInteractionRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create interaction repository: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithAPIToken(c.String("api-token")),
	)

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	ix, err := index.New(provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to create event index: %w", err)
	}

	reindexer, err := index.NewReindexer(ix, events)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}
	defer reindexer.Release()

	if err := reindexer.RebuildNow(ctx); err != nil {
		// The API still serves catalog reads while the index is empty.
		logger.Warn("initial index build failed, chat retrieval starts empty", "err", err)
	}

	bot, err := chatbot.NewChatbot(ix, events, provider.Generator(),
		chatbot.WithGenerationTimeout(c.Duration("generation-timeout")))
	if err != nil {
		return fmt.Errorf("failed to create chatbot: %w", err)
	}

	server, err := httpapi.NewServer(events, users, interactions,
		httpapi.WithChatbot(bot),
		httpapi.WithReindexer(reindexer))
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	httpServer := &http.Server{
		Addr:    c.String("addr"),
		Handler: server.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
