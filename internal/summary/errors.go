package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTemporalExpression is matched by every *TemporalExpressionError.
	ErrInvalidTemporalExpression = errors.New("invalid temporal expression")
	// ErrInvertedWindow is returned when the resolved start lies after the resolved end.
	ErrInvertedWindow = errors.New("time window start is after its end")
	// ErrInvalidParticipantExpression is reserved; unknown user tokens are ignored instead.
	ErrInvalidParticipantExpression = errors.New("invalid participant expression")
	// ErrInvalidMessageLink is returned when a message link has no guild/channel/message triple.
	ErrInvalidMessageLink = errors.New("invalid message link")
	// ErrEndpointChannelMismatch is returned when two range endpoints live in different channels.
	ErrEndpointChannelMismatch = errors.New("range endpoints are in different channels")
	// ErrEndpointNotFound is returned when a range endpoint cannot be fetched.
	ErrEndpointNotFound = errors.New("range endpoint not found")
	// ErrRetrievalPartialFailure tags per-channel failures; they are logged, never returned.
	ErrRetrievalPartialFailure = errors.New("channel retrieval failed")
	// ErrSummarizationUnavailable is matched by every *SummarizationError.
	ErrSummarizationUnavailable = errors.New("summarization unavailable")
)

// TemporalExpressionError reports a from/to argument that is neither duration shorthand
// nor an ISO-8601 timestamp.
type TemporalExpressionError struct {
	Field string
	Raw   string
}

func (e *TemporalExpressionError) Error() string {
	return fmt.Sprintf("invalid %s time %q: expected ISO-8601 or a duration like 30m, 2hr, 5d", e.Field, e.Raw)
}

// Is makes errors.Is(err, ErrInvalidTemporalExpression) true.
func (e *TemporalExpressionError) Is(target error) bool {
	return target == ErrInvalidTemporalExpression
}

// SummarizationError wraps the backend failure behind a summarization attempt.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSummarizationUnavailable, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSummarizationUnavailable) true.
func (e *SummarizationError) Is(target error) bool {
	return target == ErrSummarizationUnavailable
}

// EndpointError reports which range endpoint could not be fetched.
type EndpointError struct {
	Which     string
	ChannelID string
	MessageID string
	Err       error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%v: %s message %s in channel %s: %v", ErrEndpointNotFound, e.Which, e.MessageID, e.ChannelID, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrEndpointNotFound) true.
func (e *EndpointError) Is(target error) bool {
	return target == ErrEndpointNotFound
}
