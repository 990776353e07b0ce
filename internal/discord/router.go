package discord

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Responder is the subset of *discordgo.Session that handlers reply through.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// HandlerFunc handles one interaction.
type HandlerFunc func(ctx context.Context, r Responder, i *discordgo.InteractionCreate)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// CommandKey is the route key of a slash command.
func CommandKey(name string) string { return "command:" + name }

// ModalKey is the route key of a modal submission.
func ModalKey(customID string) string { return "modal:" + customID }

// RouteKey derives the route key of an interaction, or "" when it is not routable.
func RouteKey(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return CommandKey(i.ApplicationCommandData().Name)
	case discordgo.InteractionModalSubmit:
		return ModalKey(i.ModalSubmitData().CustomID)
	default:
		return ""
	}
}

// InteractionName is the command name or modal custom ID of i.
func InteractionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	default:
		return i.Type.String()
	}
}

// InteractionUser is the invoking user, from the member in guilds or the user in DMs.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// Router dispatches interactions to handlers by route key. Handlers run under a context
// derived from the one given to Attach, so cancelling it aborts in-flight work.
type Router struct {
	log        *slog.Logger
	routes     map[string]HandlerFunc
	middleware []Middleware

	mu       sync.Mutex
	draining bool
	inflight sync.WaitGroup
}

// NewRouter creates a Router; mw wraps every route, outermost first.
func NewRouter(logger *slog.Logger, mw ...Middleware) *Router {
	return &Router{
		log:        logger.With("component", "interaction_router"),
		routes:     make(map[string]HandlerFunc),
		middleware: mw,
	}
}

// Handle registers h under key with optional per-route middleware.
func (r *Router) Handle(key string, h HandlerFunc, mw ...Middleware) {
	if h == nil {
		r.log.Warn("Skipping registration for nil handler", "key", key)
		return
	}
	r.routes[key] = applyMiddleware(applyMiddleware(h, mw), r.middleware)
	r.log.Debug("Registered handler", "key", key, "middleware_count", len(mw)+len(r.middleware))
}

// Attach subscribes the router to s's interaction events.
func (r *Router) Attach(ctx context.Context, s *discordgo.Session) {
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Dispatch(ctx, s, i)
	})
}

// Dispatch runs the handler registered for i, if any, and blocks until it returns.
// Interactions arriving after ctx is done or after Wait was called are dropped.
func (r *Router) Dispatch(ctx context.Context, resp Responder, i *discordgo.InteractionCreate) {
	key := RouteKey(i)
	h, ok := r.routes[key]
	if !ok {
		r.log.DebugContext(ctx, "No handler for interaction", "key", key, "type", i.Type.String())
		return
	}
	if !r.begin(ctx) {
		r.log.DebugContext(ctx, "Dropping interaction during shutdown", "key", key)
		return
	}
	defer r.inflight.Done()
	h(ctx, resp, i)
}

// begin registers one in-flight handler unless the router is shutting down.
func (r *Router) begin(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draining || ctx.Err() != nil {
		return false
	}
	r.inflight.Add(1)
	return true
}

// Wait stops accepting interactions and blocks until every dispatched handler has returned.
func (r *Router) Wait() {
	r.mu.Lock()
	r.draining = true
	r.mu.Unlock()
	r.inflight.Wait()
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
