package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/recapbot/internal/metrics"
)

const (
	// DefaultPerChannelLimit caps how many messages are read from one channel.
	DefaultPerChannelLimit = 100
	// MaxPageSize is the largest history page the platform serves per call.
	MaxPageSize = 100
	// DefaultChannelConcurrency bounds parallel channel reads for all-channel scopes.
	DefaultChannelConcurrency = 4
)

// RetrieverOptions tunes a Retriever. Zero values fall back to the defaults above.
type RetrieverOptions struct {
	PerChannelLimit    int
	PageSize           int
	ChannelConcurrency int
}

// RetrievalResult is the unsorted concatenation of every channel's messages plus the
// number of channels that had to be skipped.
type RetrievalResult struct {
	Messages       []Message
	Channels       int
	FailedChannels int
}

// Retriever performs bounded, paginated history reads over a channel scope.
type Retriever struct {
	platform    Platform
	logger      *slog.Logger
	limit       int
	pageSize    int
	concurrency int
}

// NewRetriever creates a Retriever backed by platform.
func NewRetriever(platform Platform, logger *slog.Logger, opts RetrieverOptions) *Retriever {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Retriever{
		platform:    platform,
		logger:      logger.With("component", "retriever"),
		limit:       opts.PerChannelLimit,
		pageSize:    opts.PageSize,
		concurrency: opts.ChannelConcurrency,
	}
	if r.limit <= 0 {
		r.limit = DefaultPerChannelLimit
	}
	if r.pageSize <= 0 || r.pageSize > MaxPageSize {
		r.pageSize = MaxPageSize
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultChannelConcurrency
	}
	return r
}

// Retrieve reads every channel in scope inside window. Results may be truncated at the
// per-channel limit. A channel that fails is logged and contributes nothing; only
// cancellation of ctx aborts the whole retrieval.
func (r *Retriever) Retrieve(ctx context.Context, scope ChannelScope, window TimeWindow) (RetrievalResult, error) {
	channels := []string{scope.ChannelID}
	if scope.All && scope.GuildID != "" {
		ids, err := r.platform.TextChannels(ctx, scope.GuildID)
		if err != nil {
			if ctx.Err() != nil {
				return RetrievalResult{}, ctx.Err()
			}
			r.logger.WarnContext(ctx, "Failed to list guild channels, falling back to current channel",
				"guild_id", scope.GuildID, "error", err)
		} else {
			channels = ids
		}
	}

	perChannel := make([][]Message, len(channels))
	failed := make([]bool, len(channels))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, channelID := range channels {
		g.Go(func() error {
			msgs, err := r.channelHistory(gCtx, HistoryQuery{ChannelID: channelID, After: window.After, Before: window.Before})
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				r.logger.WarnContext(gCtx, "Skipping channel after retrieval failure",
					"channel_id", channelID, "error", fmt.Errorf("%w: %w", ErrRetrievalPartialFailure, err))
				metrics.ChannelRetrievalFailures.Inc()
				failed[i] = true
				return nil
			}
			perChannel[i] = msgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RetrievalResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return RetrievalResult{}, err
	}

	result := RetrievalResult{Channels: len(channels)}
	for i, msgs := range perChannel {
		if failed[i] {
			result.FailedChannels++
		}
		result.Messages = append(result.Messages, msgs...)
	}
	r.logger.DebugContext(ctx, "Retrieved channel history",
		"channels", result.Channels, "failed_channels", result.FailedChannels, "messages", len(result.Messages))
	return result, nil
}

// RetrieveRange returns the start message, every message strictly between the two
// endpoints, and the end message. Endpoints in different channels are rejected before
// anything is fetched; endpoints given newest-first are swapped.
func (r *Retriever) RetrieveRange(ctx context.Context, start, end MessageLink) ([]Message, error) {
	if start.ChannelID != end.ChannelID {
		return nil, fmt.Errorf("%w: %s and %s", ErrEndpointChannelMismatch, start.ChannelID, end.ChannelID)
	}

	first, err := r.platform.Message(ctx, start.ChannelID, start.MessageID)
	if err != nil {
		return nil, &EndpointError{Which: "start", ChannelID: start.ChannelID, MessageID: start.MessageID, Err: err}
	}
	last, err := r.platform.Message(ctx, end.ChannelID, end.MessageID)
	if err != nil {
		return nil, &EndpointError{Which: "end", ChannelID: end.ChannelID, MessageID: end.MessageID, Err: err}
	}

	if first.ID == last.ID {
		return []Message{first}, nil
	}
	if last.Timestamp.Before(first.Timestamp) {
		first, last = last, first
	}

	between, err := r.channelHistory(ctx, HistoryQuery{
		ChannelID: first.ChannelID,
		After:     first.Timestamp,
		AfterID:   first.ID,
		Before:    last.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("read messages between endpoints: %w", err)
	}

	out := make([]Message, 0, len(between)+2)
	out = append(out, first)
	for _, m := range between {
		if m.ID != first.ID && m.ID != last.ID {
			out = append(out, m)
		}
	}
	return append(out, last), nil
}

// channelHistory pages through one channel oldest-first until the window is exhausted
// or the per-channel limit is reached.
func (r *Retriever) channelHistory(ctx context.Context, q HistoryQuery) ([]Message, error) {
	var out []Message
	for len(out) < r.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q.Limit = min(r.pageSize, r.limit-len(out))
		page, err := r.platform.History(ctx, q)
		if err != nil {
			return nil, err
		}
		if len(page) > q.Limit {
			page = page[:q.Limit]
		}
		out = append(out, page...)
		if len(page) < q.Limit {
			break
		}
		q.AfterID = page[len(page)-1].ID
	}
	return out, nil
}

// isCancellation reports whether err stems from ctx being cancelled or timing out.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
