// Package config loads the recapbot configuration from a YAML file, a .env file
// and the environment, applies defaults and validates the result.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config is the root configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DiscordConfig holds the bot credentials and command registration settings.
type DiscordConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// GuildID registers commands for one guild only (instant propagation); empty means global.
	GuildID          string `mapstructure:"guild_id" validate:"omitempty,numeric"`
	RegisterCommands bool   `mapstructure:"register_commands"`
	DefaultEphemeral bool   `mapstructure:"default_ephemeral"`
}

// LLMConfig selects and tunes the completion backend.
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"         validate:"oneof=openai gemini"`
	APIKey         string        `mapstructure:"api_key"          validate:"required"`
	BaseURL        string        `mapstructure:"base_url"         validate:"omitempty,url"`
	Model          string        `mapstructure:"model"            validate:"required"`
	Temperature    float32       `mapstructure:"temperature"      validate:"min=0,max=2"`
	MaxTokens      int           `mapstructure:"max_tokens"       validate:"min=1,max=32768"`
	Timeout        time.Duration `mapstructure:"timeout"          validate:"min=1s,max=10m"`
	WindowPersona  string        `mapstructure:"window_persona"`
	RangePersona   string        `mapstructure:"range_persona"`
	ProbeOnStartup bool          `mapstructure:"probe_on_startup"`
}

// SummaryConfig tunes retrieval and delivery.
type SummaryConfig struct {
	DefaultLookback    time.Duration `mapstructure:"default_lookback"    validate:"gt=0"`
	PerChannelLimit    int           `mapstructure:"per_channel_limit"   validate:"min=1,max=10000"`
	PageSize           int           `mapstructure:"page_size"           validate:"min=1,max=100"`
	MaxChunkLength     int           `mapstructure:"max_chunk_length"    validate:"min=1,max=2000"`
	ChannelConcurrency int           `mapstructure:"channel_concurrency" validate:"min=1,max=32"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"     validate:"min=1s"`
}

// SchedulerConfig lists the scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task on a cron schedule (seconds field optional).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// HTTPConfig controls the ops server exposing /healthz and /metrics.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-facing text.
type MessagesConfig struct {
	NoMessages          string `mapstructure:"no_messages"          validate:"required"`
	InvalidFromTime     string `mapstructure:"invalid_from_time"    validate:"required"`
	InvalidToTime       string `mapstructure:"invalid_to_time"      validate:"required"`
	InvertedWindow      string `mapstructure:"inverted_window"      validate:"required"`
	InvalidLink         string `mapstructure:"invalid_link"         validate:"required"`
	ChannelMismatch     string `mapstructure:"channel_mismatch"     validate:"required"`
	EndpointNotFound    string `mapstructure:"endpoint_not_found"   validate:"required"`
	SummarizationFailed string `mapstructure:"summarization_failed" validate:"required"`
	PartialChannels     string `mapstructure:"partial_channels"     validate:"required"`
	GeneralError        string `mapstructure:"general_error"        validate:"required"`
	Timeout             string `mapstructure:"timeout"              validate:"required"`
}
