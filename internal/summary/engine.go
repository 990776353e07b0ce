package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/recapbot/internal/metrics"
)

// DefaultLookback is the window start used when no "from" is given.
const DefaultLookback = time.Hour

// Request kinds, used in logs and metrics.
const (
	KindWindow = "window"
	KindRange  = "range"
)

// Request is a time-window summary request with the raw command arguments.
type Request struct {
	From        string
	To          string
	Users       string
	AllChannels bool
	GuildID     string
	ChannelID   string
}

// RangeRequest is a summary request between two message links.
type RangeRequest struct {
	StartLink string
	EndLink   string
}

// Result is the outcome of a summary request. Empty is set, with no chunks, when no
// message matched; the summarizer is not called in that case.
type Result struct {
	Chunks         []string
	Messages       int
	Channels       int
	FailedChannels int
	Empty          bool
}

// EngineOptions configures an Engine. Zero values fall back to package defaults.
type EngineOptions struct {
	Lookback       time.Duration
	MaxChunkLength int
	WindowPersona  string
	RangePersona   string
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Engine wires the resolvers, retriever, assembler, summarizer and chunker into the
// two summary flows.
type Engine struct {
	platform   Platform
	retriever  *Retriever
	summarizer *Summarizer
	opts       EngineOptions
	logger     *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(platform Platform, retriever *Retriever, summarizer *Summarizer, opts EngineOptions, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if opts.MaxChunkLength <= 0 {
		opts.MaxChunkLength = DefaultMaxChunkLength
	}
	if opts.WindowPersona == "" {
		opts.WindowPersona = WindowPersona
	}
	if opts.RangePersona == "" {
		opts.RangePersona = RangePersona
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		platform:   platform,
		retriever:  retriever,
		summarizer: summarizer,
		opts:       opts,
		logger:     logger.With("component", "summary_engine"),
	}
}

// Summarize runs the time-window flow: resolve from/to, resolve the user filter, read the
// scope, assemble, summarize once and chunk. Argument errors are returned before any
// history is read.
func (e *Engine) Summarize(ctx context.Context, req Request) (Result, error) {
	log := e.logger.With("kind", KindWindow, "guild_id", req.GuildID, "channel_id", req.ChannelID)

	window, err := NewResolver(e.opts.Now()).Window(req.From, req.To, e.opts.Lookback)
	if err != nil {
		log.InfoContext(ctx, "Rejected temporal arguments", "from", req.From, "to", req.To, "error", err)
		return e.fail(KindWindow, err)
	}

	var filter ParticipantFilter
	if strings.TrimSpace(req.Users) != "" {
		var roster []Participant
		if NeedsRoster(req.Users) && req.GuildID != "" {
			roster, err = e.platform.Members(ctx, req.GuildID)
			if err != nil {
				if ctx.Err() != nil {
					return e.fail(KindWindow, ctx.Err())
				}
				log.WarnContext(ctx, "Failed to load member roster, resolving mentions only", "error", err)
			}
		}
		filter = ResolveParticipants(req.Users, roster)
		log.DebugContext(ctx, "Resolved participant filter", "raw", req.Users, "participants", len(filter))
	}

	scope := ChannelScope{GuildID: req.GuildID, ChannelID: req.ChannelID, All: req.AllChannels}
	retrieved, err := e.retriever.Retrieve(ctx, scope, window)
	if err != nil {
		return e.fail(KindWindow, err)
	}
	log.InfoContext(ctx, "Retrieved messages",
		"after", window.After, "before", window.Before, "all_channels", scope.All,
		"messages", len(retrieved.Messages), "channels", retrieved.Channels, "failed_channels", retrieved.FailedChannels)

	res, err := e.finish(ctx, KindWindow, Assemble(retrieved.Messages, filter), e.opts.WindowPersona)
	res.Channels, res.FailedChannels = retrieved.Channels, retrieved.FailedChannels
	return res, err
}

// SummarizeRange runs the message-link flow.
func (e *Engine) SummarizeRange(ctx context.Context, req RangeRequest) (Result, error) {
	start, err := ParseMessageLink(req.StartLink)
	if err != nil {
		return e.fail(KindRange, err)
	}
	end, err := ParseMessageLink(req.EndLink)
	if err != nil {
		return e.fail(KindRange, err)
	}

	msgs, err := e.retriever.RetrieveRange(ctx, start, end)
	if err != nil {
		e.logger.InfoContext(ctx, "Range retrieval failed", "kind", KindRange,
			"start", start.MessageID, "end", end.MessageID, "error", err)
		return e.fail(KindRange, err)
	}

	res, err := e.finish(ctx, KindRange, Assemble(msgs, nil), e.opts.RangePersona)
	res.Channels = 1
	return res, err
}

func (e *Engine) finish(ctx context.Context, kind string, transcript Transcript, persona string) (Result, error) {
	metrics.MessagesRetrieved.Observe(float64(transcript.Len()))
	if transcript.Empty() {
		metrics.SummaryRequests.WithLabelValues(kind, "empty").Inc()
		return Result{Empty: true}, nil
	}

	text, err := e.summarizer.Summarize(ctx, transcript, persona)
	if err != nil {
		return e.fail(kind, err)
	}
	if err := ctx.Err(); err != nil {
		return e.fail(kind, err)
	}

	metrics.SummaryRequests.WithLabelValues(kind, "ok").Inc()
	return Result{Chunks: Chunk(text, e.opts.MaxChunkLength), Messages: transcript.Len()}, nil
}

func (e *Engine) fail(kind string, err error) (Result, error) {
	metrics.SummaryRequests.WithLabelValues(kind, outcomeLabel(err)).Inc()
	return Result{}, err
}

func outcomeLabel(err error) string {
	switch {
	case isCancellation(err):
		return "cancelled"
	case errors.Is(err, ErrInvalidTemporalExpression), errors.Is(err, ErrInvertedWindow), errors.Is(err, ErrInvalidMessageLink):
		return "invalid_input"
	case errors.Is(err, ErrEndpointChannelMismatch), errors.Is(err, ErrEndpointNotFound):
		return "invalid_endpoint"
	case errors.Is(err, ErrSummarizationUnavailable):
		return "summarization_failed"
	default:
		return "error"
	}
}
