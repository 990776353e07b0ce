package summary

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/edgard/recapbot/internal/llm"
)

var errNotFound = errors.New("not found")

// fakePlatform serves history from an in-memory, per-channel message list.
type fakePlatform struct {
	mu sync.Mutex

	channels     map[string][]Message
	guildText    []string
	roster       []Participant
	historyErr   map[string]error
	listErr      error
	membersErr   error
	historyCalls []HistoryQuery
	messageCalls int
	membersCalls int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		channels:   map[string][]Message{},
		historyErr: map[string]error{},
	}
}

func (f *fakePlatform) add(msgs ...Message) {
	for _, m := range msgs {
		f.channels[m.ChannelID] = append(f.channels[m.ChannelID], m)
	}
	for id := range f.channels {
		sort.SliceStable(f.channels[id], func(i, j int) bool {
			return f.channels[id][i].Timestamp.Before(f.channels[id][j].Timestamp)
		})
	}
}

func (f *fakePlatform) History(_ context.Context, q HistoryQuery) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls = append(f.historyCalls, q)
	if err := f.historyErr[q.ChannelID]; err != nil {
		return nil, err
	}

	var out []Message
	seenAfterID := q.AfterID == ""
	for _, m := range f.channels[q.ChannelID] {
		if !seenAfterID {
			if m.ID == q.AfterID {
				seenAfterID = true
			}
			continue
		}
		if q.AfterID == "" && !m.Timestamp.After(q.After) {
			continue
		}
		if !q.Before.IsZero() && !m.Timestamp.Before(q.Before) {
			continue
		}
		out = append(out, m)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakePlatform) Message(_ context.Context, channelID, messageID string) (Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageCalls++
	for _, m := range f.channels[channelID] {
		if m.ID == messageID {
			return m, nil
		}
	}
	return Message{}, errNotFound
}

func (f *fakePlatform) TextChannels(context.Context, string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.guildText, nil
}

func (f *fakePlatform) Members(context.Context, string) ([]Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.membersCalls++
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.roster, nil
}

// fakeLLM records requests and returns a canned reply.
type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func msg(id, channel, authorID, author, content string, at time.Time) Message {
	return Message{ID: id, ChannelID: channel, AuthorID: authorID, Author: author, Content: content, Timestamp: at}
}
