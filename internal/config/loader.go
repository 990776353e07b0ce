package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RECAP_LLM_MODEL.
const EnvPrefix = "RECAP"

// legacyEnv binds the plain variable names the bot has always honored.
var legacyEnv = map[string]string{
	"discord.token": "DISCORD_TOKEN",
	"llm.api_key":   "MODEL_API_KEY",
	"llm.base_url":  "OPENAI_BASE_URL",
	"llm.model":     "OPENAI_MODEL",
}

// LoadConfig loads and validates configuration from, in increasing priority:
// 1. Default values
// 2. The YAML file at path (optional)
// 3. Environment variables, after loading .env from the working directory if present
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %v", ErrConfiguration, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, legacy, err)
		}
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Debug("Configuration loaded",
		"path", path,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"guild_id", cfg.Discord.GuildID,
		"http_enabled", cfg.HTTP.Enabled)
	return cfg, nil
}

// Validate checks the struct tags of the whole tree.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// readConfigFile merges the YAML file at path; a missing file is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Config file not found, using defaults and environment", "path", path)
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.register_commands", DefaultDiscordRegisterCommands)
	v.SetDefault("discord.default_ephemeral", DefaultDiscordEphemeral)

	v.SetDefault("llm.provider", DefaultLLMProvider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("llm.temperature", DefaultLLMTemperature)
	v.SetDefault("llm.max_tokens", DefaultLLMMaxTokens)
	v.SetDefault("llm.timeout", DefaultLLMTimeout)
	v.SetDefault("llm.window_persona", "")
	v.SetDefault("llm.range_persona", "")
	v.SetDefault("llm.probe_on_startup", DefaultLLMProbe)

	v.SetDefault("summary.default_lookback", DefaultSummaryLookback)
	v.SetDefault("summary.per_channel_limit", DefaultSummaryPerChannelLimit)
	v.SetDefault("summary.page_size", DefaultSummaryPageSize)
	v.SetDefault("summary.max_chunk_length", DefaultSummaryMaxChunkLength)
	v.SetDefault("summary.channel_concurrency", DefaultSummaryChannelConcurrency)
	v.SetDefault("summary.request_timeout", DefaultSummaryRequestTimeout)

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	v.SetDefault("http.enabled", DefaultHTTPEnabled)
	v.SetDefault("http.addr", DefaultHTTPAddr)

	v.SetDefault("messages.no_messages", DefaultMessages.NoMessages)
	v.SetDefault("messages.invalid_from_time", DefaultMessages.InvalidFromTime)
	v.SetDefault("messages.invalid_to_time", DefaultMessages.InvalidToTime)
	v.SetDefault("messages.inverted_window", DefaultMessages.InvertedWindow)
	v.SetDefault("messages.invalid_link", DefaultMessages.InvalidLink)
	v.SetDefault("messages.channel_mismatch", DefaultMessages.ChannelMismatch)
	v.SetDefault("messages.endpoint_not_found", DefaultMessages.EndpointNotFound)
	v.SetDefault("messages.summarization_failed", DefaultMessages.SummarizationFailed)
	v.SetDefault("messages.partial_channels", DefaultMessages.PartialChannels)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.timeout", DefaultMessages.Timeout)
}
