package summary

import (
	"regexp"
	"strings"
)

var (
	tokenSeparator = regexp.MustCompile(`[\s,]+`)
	mentionPattern = regexp.MustCompile(`^<@!?(\d+)>`)
)

func participantTokens(raw string) []string {
	var tokens []string
	for _, tok := range tokenSeparator.Split(strings.TrimSpace(raw), -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func nameToken(tok string) (string, bool) {
	if len(tok) > 1 && strings.HasPrefix(tok, "@") {
		return tok[1:], true
	}
	return "", false
}

// NeedsRoster reports whether raw contains any "@name" token, i.e. whether resolving it
// requires the member roster. Mention tokens resolve without one.
func NeedsRoster(raw string) bool {
	for _, tok := range participantTokens(raw) {
		if mentionPattern.MatchString(tok) {
			continue
		}
		if _, ok := nameToken(tok); ok {
			return true
		}
	}
	return false
}

// ResolveParticipants parses raw into a participant filter.
//
// Mention tokens (<@123>, <@!123>) contribute their ID directly. "@name" tokens are matched
// case-sensitively against each roster member's username, global name and nickname, and
// every matching member is added. Anything else is ignored. The result is never nil, so an
// input where nothing resolves filters out every message.
func ResolveParticipants(raw string, roster []Participant) ParticipantFilter {
	filter := ParticipantFilter{}
	for _, tok := range participantTokens(raw) {
		if m := mentionPattern.FindStringSubmatch(tok); m != nil {
			filter[m[1]] = struct{}{}
			continue
		}
		name, ok := nameToken(tok)
		if !ok {
			continue
		}
		for _, p := range roster {
			if p.Username == name || (p.GlobalName != "" && p.GlobalName == name) || (p.Nickname != "" && p.Nickname == name) {
				filter[p.ID] = struct{}{}
			}
		}
	}
	return filter
}
