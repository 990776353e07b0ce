package handlers

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// /summary option names.
const (
	optionFromTime    = "from_time"
	optionToTime      = "to_time"
	optionUsers       = "users"
	optionAllChannels = "all_channels"
	optionEphemeral   = "ephemeral"
)

// summary_links modal input IDs.
const (
	inputStartLink = "start_link"
	inputEndLink   = "end_link"
	inputEphemeral = "ephemeral"
)

type summaryOptions struct {
	From        string
	To          string
	Users       string
	AllChannels bool
	Ephemeral   bool
}

// parseSummaryOptions reads the /summary options; absent options keep their defaults.
func parseSummaryOptions(opts []*discordgo.ApplicationCommandInteractionDataOption, defaultEphemeral bool) summaryOptions {
	out := summaryOptions{Ephemeral: defaultEphemeral}
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionString:
			switch o.Name {
			case optionFromTime:
				out.From = o.StringValue()
			case optionToTime:
				out.To = o.StringValue()
			case optionUsers:
				out.Users = o.StringValue()
			}
		case discordgo.ApplicationCommandOptionBoolean:
			switch o.Name {
			case optionAllChannels:
				out.AllChannels = o.BoolValue()
			case optionEphemeral:
				out.Ephemeral = o.BoolValue()
			}
		}
	}
	return out
}

// isTruthy accepts true, yes, 1 and y in any case.
func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "y":
		return true
	default:
		return false
	}
}

// modalValues flattens the text inputs of a modal submission into a map keyed by custom ID.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	var walk func(components []discordgo.MessageComponent)
	walk = func(components []discordgo.MessageComponent) {
		for _, c := range components {
			switch v := c.(type) {
			case *discordgo.ActionsRow:
				walk(v.Components)
			case discordgo.ActionsRow:
				walk(v.Components)
			case *discordgo.TextInput:
				values[v.CustomID] = v.Value
			case discordgo.TextInput:
				values[v.CustomID] = v.Value
			}
		}
	}
	walk(data.Components)
	return values
}

func summaryLinksModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: ModalSummaryLinks,
		Title:    "Summarize by Message Links",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputStartLink,
					Label:       "Start message link",
					Style:       discordgo.TextInputShort,
					Placeholder: "Paste the first message link",
					Required:    true,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputEndLink,
					Label:       "End message link",
					Style:       discordgo.TextInputShort,
					Placeholder: "Paste the second message link",
					Required:    true,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: inputEphemeral,
					Label:    "Ephemeral? (true/false)",
					Style:    discordgo.TextInputShort,
					Value:    "true",
					Required: true,
				},
			}},
		},
	}
}
