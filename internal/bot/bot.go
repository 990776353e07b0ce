// Package bot wires the long-running components of the bot together and manages their
// lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the HTTP server drain on shutdown.
const shutdownTimeout = 10 * time.Second

// Gateway is the realtime connection to Discord, normally a *discordgo.Session.
type Gateway interface {
	Open() error
	Close() error
}

// Drainer waits for in-flight interaction handlers, normally a *discord.Router.
type Drainer interface {
	Wait()
}

// Bot manages the lifecycle of the gateway session, the scheduler and the optional
// HTTP server.
type Bot struct {
	logger    *slog.Logger
	gateway   Gateway
	handlers  Drainer
	scheduler *Scheduler
	server    *http.Server
}

// NewBot creates a Bot. server may be nil when the HTTP endpoint is disabled.
func NewBot(logger *slog.Logger, gateway Gateway, handlers Drainer, scheduler *Scheduler, server *http.Server) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		gateway:   gateway,
		handlers:  handlers,
		scheduler: scheduler,
		server:    server,
	}
}

// Run starts every component and blocks until ctx is cancelled or a component fails.
// On the way out it lets in-flight handlers finish before closing the gateway.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Opening Discord gateway session")
		if err := b.gateway.Open(); err != nil {
			return fmt.Errorf("failed to open gateway session: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, waiting for in-flight interactions")
		b.handlers.Wait()

		if err := b.gateway.Close(); err != nil {
			b.logger.Error("Error closing gateway session", "error", err)
		}
		b.logger.Info("Discord gateway session closed")
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.server != nil {
		g.Go(func() error {
			b.logger.Info("Starting HTTP server", "addr", b.server.Addr)
			if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
			defer cancel()
			if err := b.server.Shutdown(shutdownCtx); err != nil {
				b.logger.Error("Error shutting down HTTP server", "error", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}
