package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Discord defaults
	DefaultDiscordRegisterCommands = true
	DefaultDiscordEphemeral        = true

	// LLM defaults; the base URL applies to the openai provider when llm.base_url is empty
	DefaultLLMProvider    = "openai"
	DefaultLLMBaseURL     = "https://api.groq.com/openai/v1"
	DefaultLLMModel       = "llama3-70b-8192"
	DefaultLLMTemperature = 0.7
	DefaultLLMMaxTokens   = 500
	DefaultLLMTimeout     = 2 * time.Minute
	DefaultLLMProbe       = true

	// Summary defaults
	DefaultSummaryLookback           = time.Hour
	DefaultSummaryPerChannelLimit    = 100
	DefaultSummaryPageSize           = 100
	DefaultSummaryMaxChunkLength     = 1900 // leaves headroom under Discord's 2000 limit
	DefaultSummaryChannelConcurrency = 4
	DefaultSummaryRequestTimeout     = 3 * time.Minute

	// HTTP defaults
	DefaultHTTPEnabled = false
	DefaultHTTPAddr    = ":9090"
)

// DefaultMessages are the stock user-facing texts.
var DefaultMessages = MessagesConfig{
	NoMessages:          "No messages found for the given range and filters.",
	InvalidFromTime:     "Invalid 'from_time' format. Use ISO-8601 or duration like 30m, 2hr, 5d.",
	InvalidToTime:       "Invalid 'to_time' format. Use ISO-8601 or duration like 10m, 1hr, 2d.",
	InvertedWindow:      "The start time must be before the end time.",
	InvalidLink:         "Invalid message link. Use 'Copy Message Link' on the message you want.",
	ChannelMismatch:     "Both links must be from the same channel",
	EndpointNotFound:    "Could not fetch one of the linked messages. Check the links and my access to that channel.",
	SummarizationFailed: "The summarization service is unavailable right now. Please try again later.",
	PartialChannels:     "Note: %d channel(s) could not be read and were skipped.",
	GeneralError:        "An error occurred. Please try again later.",
	Timeout:             "The summary took too long. Try a shorter range.",
}

// DefaultTasks are the scheduled tasks known to the bot, disabled unless configured.
var DefaultTasks = map[string]TaskConfig{
	"llm_probe": {Enabled: false, Schedule: "0 */15 * * * *"},
}
