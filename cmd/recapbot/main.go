// Package main contains the entrypoint for the recap bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/bot"
	"github.com/edgard/recapbot/internal/bot/handlers"
	"github.com/edgard/recapbot/internal/bot/tasks"
	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/httpapi"
	"github.com/edgard/recapbot/internal/llm"
	"github.com/edgard/recapbot/internal/logger"
	"github.com/edgard/recapbot/internal/summary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires every component, blocks until shutdown and returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	llmClient, err := llm.NewClient(ctx, cfg.LLM, log)
	if err != nil {
		log.Error("Failed to initialize completion client", "error", err)
		return 1
	}

	session, err := discord.NewSession(cfg.Discord.Token, log)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return 1
	}

	platform := discord.NewPlatform(session, log)
	engine := summary.NewEngine(
		platform,
		summary.NewRetriever(platform, log, summary.RetrieverOptions{
			PerChannelLimit:    cfg.Summary.PerChannelLimit,
			PageSize:           cfg.Summary.PageSize,
			ChannelConcurrency: cfg.Summary.ChannelConcurrency,
		}),
		summary.NewSummarizer(llmClient, cfg.LLM.Temperature, cfg.LLM.MaxTokens, log),
		summary.EngineOptions{
			Lookback:       cfg.Summary.DefaultLookback,
			MaxChunkLength: cfg.Summary.MaxChunkLength,
			WindowPersona:  cfg.LLM.WindowPersona,
			RangePersona:   cfg.LLM.RangePersona,
		},
		log,
	)

	hDeps := handlers.HandlerDeps{Logger: log, Config: cfg, Summaries: engine}
	tDeps := tasks.TaskDeps{Logger: log, LLM: llmClient, Config: cfg}

	router := discord.NewRouter(log, handlers.Recover(log), logger.Middleware(log), handlers.Instrument())
	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	handlers.Mount(router, cmdHandlers)
	router.Attach(ctx, session)

	var onReady sync.Once
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Connected to Discord", "bot_user", r.User.Username, "guilds", len(r.Guilds))
		onReady.Do(func() { startup(ctx, log, cfg, s, llmClient, handlers.Commands(cmdHandlers)) })
	})

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var server *http.Server
	if cfg.HTTP.Enabled {
		server = httpapi.NewServer(cfg.HTTP.Addr, httpapi.NewRouter(log, map[string]httpapi.CheckFunc{
			"discord": func(context.Context) error {
				session.RLock()
				defer session.RUnlock()
				if !session.DataReady {
					return errors.New("gateway session not ready")
				}
				return nil
			},
		}))
	}

	app := bot.NewBot(log, session, router, sched, server)

	log.Info("Starting bot")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully")
	return 0
}

// startup runs the one-time work that needs an identified session.
func startup(ctx context.Context, log *slog.Logger, cfg *config.Config, s *discordgo.Session, client llm.Client, cmds []*discordgo.ApplicationCommand) {
	if cfg.Discord.RegisterCommands {
		if err := discord.SyncCommands(s, cfg.Discord.GuildID, cmds, log); err != nil {
			log.Error("Failed to register slash commands", "error", err)
		}
	}
	if cfg.LLM.ProbeOnStartup {
		if err := tasks.ProbeLLM(ctx, client); err != nil {
			log.Warn("Completion backend probe failed; summaries will fail until it recovers", "error", err)
		} else {
			log.Info("Completion backend probe succeeded", "provider", client.Provider())
		}
	}
}
