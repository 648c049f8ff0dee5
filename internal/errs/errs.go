// Package errs defines the domain error taxonomy. Every fallible operation
// in the core surfaces one of these coded errors so the calling layer can
// route failures to users without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain failure.
type Code string

const (
	CodePlayerNotFound     Code = "PLAYER_NOT_FOUND"
	CodeMatchStatsNotFound Code = "PLAYER_MATCH_STATS_NOT_FOUND"
	CodeNotEnoughMatches   Code = "PLAYER_MATCH_STATS_NOT_ENOUGH"
	CodeAPIRequest         Code = "API_REQUEST_ERROR"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes two coded errors equal when their codes match, so sentinel-style
// errors.Is comparisons work against constructor results.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

func PlayerNotFound(name string) *Error {
	return &Error{Code: CodePlayerNotFound, Message: fmt.Sprintf("player not found: %s", name)}
}

func MatchStatsNotFound(playerName, matchID string) *Error {
	return &Error{
		Code:    CodeMatchStatsNotFound,
		Message: fmt.Sprintf("match stats not found for player %s in match %s", playerName, matchID),
	}
}

// NoQualifyingMatches reports a scoring request that found zero usable
// rounds.
func NoQualifyingMatches(playerName string) *Error {
	return &Error{
		Code:    CodeMatchStatsNotFound,
		Message: fmt.Sprintf("no qualifying matches found for player %s", playerName),
	}
}

// NotEnoughMatches reports a sample too small to score reliably.
func NotEnoughMatches(found, required int) *Error {
	return &Error{
		Code:    CodeNotEnoughMatches,
		Message: fmt.Sprintf("only %d qualifying matches found, at least %d required", found, required),
	}
}

func APIRequest(cause error) *Error {
	return &Error{Code: CodeAPIRequest, Message: "api request failed", Err: cause}
}

func AlreadyExists(key string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: fmt.Sprintf("record already exists: %s", key)}
}
