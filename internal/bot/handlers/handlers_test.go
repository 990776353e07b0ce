package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/summary"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func (f *fakeResponder) contents() []string {
	out := make([]string, len(f.followups))
	for i, p := range f.followups {
		out[i] = p.Content
	}
	return out
}

type fakeService struct {
	result     summary.Result
	err        error
	requests   []summary.Request
	rangeCalls []summary.RangeRequest
	block      bool
}

func (f *fakeService) Summarize(ctx context.Context, req summary.Request) (summary.Result, error) {
	f.requests = append(f.requests, req)
	if f.block {
		<-ctx.Done()
		return summary.Result{}, ctx.Err()
	}
	return f.result, f.err
}

func (f *fakeService) SummarizeRange(_ context.Context, req summary.RangeRequest) (summary.Result, error) {
	f.rangeCalls = append(f.rangeCalls, req)
	return f.result, f.err
}

func testDeps(svc SummaryService) HandlerDeps {
	return HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			Discord:  config.DiscordConfig{DefaultEphemeral: true},
			Summary:  config.SummaryConfig{RequestTimeout: time.Minute},
			Messages: config.DefaultMessages,
		},
		Summaries: svc,
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func summaryInteraction(opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "g",
		ChannelID: "c",
		Data:      discordgo.ApplicationCommandInteractionData{Name: CommandSummary, Options: opts},
	}}
}

func modalSubmission(start, end, ephemeral string) *discordgo.InteractionCreate {
	row := func(id, value string) discordgo.MessageComponent {
		return &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: id, Value: value},
		}}
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionModalSubmit,
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: ModalSummaryLinks,
			Components: []discordgo.MessageComponent{
				row(inputStartLink, start), row(inputEndLink, end), row(inputEphemeral, ephemeral),
			},
		},
	}}
}

func TestParseSummaryOptions(t *testing.T) {
	req := require.New(t)

	req.Equal(summaryOptions{Ephemeral: true}, parseSummaryOptions(nil, true))

	got := parseSummaryOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(optionFromTime, "2h"),
		stringOpt(optionToTime, "2024-06-01T15:00:00Z"),
		stringOpt(optionUsers, "<@1> @bob"),
		boolOpt(optionAllChannels, true),
		boolOpt(optionEphemeral, false),
	}, true)
	req.Equal(summaryOptions{
		From:        "2h",
		To:          "2024-06-01T15:00:00Z",
		Users:       "<@1> @bob",
		AllChannels: true,
		Ephemeral:   false,
	}, got)
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"true", "TRUE", " yes ", "1", "y", "Y"} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "false", "no", "0", "n", "maybe"} {
		assert.False(t, isTruthy(v), v)
	}
}

func TestModalValues(t *testing.T) {
	got := modalValues(modalSubmission("a", "b", "no").ModalSubmitData())
	require.Equal(t, map[string]string{inputStartLink: "a", inputEndLink: "b", inputEphemeral: "no"}, got)
}

func TestUserMessage(t *testing.T) {
	msgs := config.DefaultMessages
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"from", &summary.TemporalExpressionError{Field: summary.FieldFrom, Raw: "x"}, msgs.InvalidFromTime},
		{"to", &summary.TemporalExpressionError{Field: summary.FieldTo, Raw: "x"}, msgs.InvalidToTime},
		{"inverted", summary.ErrInvertedWindow, msgs.InvertedWindow},
		{"link", fmt.Errorf("%w: %q", summary.ErrInvalidMessageLink, "x"), msgs.InvalidLink},
		{"mismatch", fmt.Errorf("%w: 1 and 2", summary.ErrEndpointChannelMismatch), msgs.ChannelMismatch},
		{"endpoint", &summary.EndpointError{Which: "start", Err: errors.New("404")}, msgs.EndpointNotFound},
		{"llm", &summary.SummarizationError{Err: errors.New("503")}, msgs.SummarizationFailed},
		{"llm timeout", &summary.SummarizationError{Err: context.DeadlineExceeded}, msgs.Timeout},
		{"other", errors.New("boom"), msgs.GeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(msgs, tt.err))
		})
	}
}

func TestSummaryHandler_DeliversChunks(t *testing.T) {
	req := require.New(t)
	svc := &fakeService{result: summary.Result{Chunks: []string{"part 1", "part 2"}, Messages: 12}}
	r := &fakeResponder{}

	NewSummaryHandler(testDeps(svc))(context.Background(), r, summaryInteraction(
		stringOpt(optionFromTime, "3h"), boolOpt(optionAllChannels, true),
	))

	req.Len(svc.requests, 1)
	req.Equal(summary.Request{From: "3h", AllChannels: true, GuildID: "g", ChannelID: "c"}, svc.requests[0])
	req.Len(r.responses, 1)
	req.Equal(discordgo.InteractionResponseDeferredChannelMessageWithSource, r.responses[0].Type)
	req.Equal(discordgo.MessageFlagsEphemeral, r.responses[0].Data.Flags)
	req.Equal([]string{"part 1", "part 2"}, r.contents())
	req.Equal(discordgo.MessageFlagsEphemeral, r.followups[1].Flags)
}

func TestSummaryHandler_PublicReplyWithSkippedChannels(t *testing.T) {
	req := require.New(t)
	svc := &fakeService{result: summary.Result{Chunks: []string{"summary"}, FailedChannels: 2}}
	r := &fakeResponder{}

	NewSummaryHandler(testDeps(svc))(context.Background(), r, summaryInteraction(boolOpt(optionEphemeral, false)))

	req.Zero(r.responses[0].Data.Flags)
	req.Equal([]string{"summary", fmt.Sprintf(config.DefaultMessages.PartialChannels, 2)}, r.contents())
	req.Zero(r.followups[0].Flags)
}

func TestSummaryHandler_EmptyResult(t *testing.T) {
	r := &fakeResponder{}
	NewSummaryHandler(testDeps(&fakeService{result: summary.Result{Empty: true}}))(context.Background(), r, summaryInteraction())
	require.Equal(t, []string{config.DefaultMessages.NoMessages}, r.contents())
}

func TestSummaryHandler_InvalidInput(t *testing.T) {
	r := &fakeResponder{}
	svc := &fakeService{err: &summary.TemporalExpressionError{Field: summary.FieldTo, Raw: "later"}}

	NewSummaryHandler(testDeps(svc))(context.Background(), r, summaryInteraction(stringOpt(optionToTime, "later")))

	require.Equal(t, []string{config.DefaultMessages.InvalidToTime}, r.contents())
}

func TestSummaryHandler_TimeoutStillReplies(t *testing.T) {
	req := require.New(t)
	deps := testDeps(&fakeService{block: true})
	r := &fakeResponder{}
	handler := Timeout(20 * time.Millisecond)(NewSummaryHandler(deps))

	handler(context.Background(), r, summaryInteraction())

	req.Equal([]string{config.DefaultMessages.Timeout}, r.contents())
}

func TestSummaryHandler_ShutdownSendsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{err: context.Canceled}
	r := &fakeResponder{}
	cancel()

	NewSummaryHandler(testDeps(svc))(ctx, r, summaryInteraction())

	require.Empty(t, r.followups)
}

func TestSummaryLinksHandler_OpensModal(t *testing.T) {
	req := require.New(t)
	r := &fakeResponder{}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: CommandSummaryLinks},
	}}

	NewSummaryLinksHandler(testDeps(&fakeService{}))(context.Background(), r, i)

	req.Len(r.responses, 1)
	req.Equal(discordgo.InteractionResponseModal, r.responses[0].Type)
	req.Equal(ModalSummaryLinks, r.responses[0].Data.CustomID)
	req.Len(r.responses[0].Data.Components, 3)
}

func TestSummaryLinksSubmit(t *testing.T) {
	req := require.New(t)
	svc := &fakeService{result: summary.Result{Chunks: []string{"range summary"}}}
	r := &fakeResponder{}

	NewSummaryLinksSubmitHandler(testDeps(svc))(context.Background(), r,
		modalSubmission("https://discord.com/channels/1/2/3", "https://discord.com/channels/1/2/9", "no"))

	req.Equal([]summary.RangeRequest{{
		StartLink: "https://discord.com/channels/1/2/3",
		EndLink:   "https://discord.com/channels/1/2/9",
	}}, svc.rangeCalls)
	req.Zero(r.responses[0].Data.Flags)
	req.Equal([]string{"range summary"}, r.contents())
}

func TestSummaryLinksSubmit_Mismatch(t *testing.T) {
	r := &fakeResponder{}
	svc := &fakeService{err: fmt.Errorf("%w: 2 and 5", summary.ErrEndpointChannelMismatch)}

	NewSummaryLinksSubmitHandler(testDeps(svc))(context.Background(), r, modalSubmission("a", "b", "true"))

	require.Equal(t, []string{config.DefaultMessages.ChannelMismatch}, r.contents())
	require.Equal(t, discordgo.MessageFlagsEphemeral, r.followups[0].Flags)
}

func TestRegisterAllCommands(t *testing.T) {
	req := require.New(t)
	handlers := RegisterAllCommands(testDeps(&fakeService{}))

	req.Len(handlers, 3)
	req.Contains(handlers, discord.CommandKey(CommandSummary))
	req.Contains(handlers, discord.CommandKey(CommandSummaryLinks))
	req.Contains(handlers, discord.ModalKey(ModalSummaryLinks))

	cmds := Commands(handlers)
	req.Len(cmds, 2)
	req.Equal(CommandSummary, cmds[0].Name)
	req.Len(cmds[0].Options, 5)
	for _, o := range cmds[0].Options {
		req.LessOrEqual(len(o.Description), 100, o.Name)
	}
	req.Equal(CommandSummaryLinks, cmds[1].Name)
}

func TestRecover(t *testing.T) {
	handler := Recover(slog.New(slog.NewTextHandler(io.Discard, nil)))(func(context.Context, discord.Responder, *discordgo.InteractionCreate) {
		panic("boom")
	})
	require.NotPanics(t, func() { handler(context.Background(), &fakeResponder{}, summaryInteraction()) })
}
