package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCodeWalksWrappedChain(t *testing.T) {
	err := fmt.Errorf("outer context: %w", PlayerNotFound("alpha"))

	if !IsCode(err, CodePlayerNotFound) {
		t.Error("IsCode should find the code through fmt.Errorf wrapping")
	}
	if IsCode(err, CodeAPIRequest) {
		t.Error("IsCode matched a code the chain does not carry")
	}
	if IsCode(nil, CodePlayerNotFound) {
		t.Error("IsCode(nil) must be false")
	}
	if IsCode(errors.New("plain"), CodePlayerNotFound) {
		t.Error("IsCode on a plain error must be false")
	}
}

func TestErrorsIsComparesByCode(t *testing.T) {
	a := NotEnoughMatches(5, 20)
	b := NotEnoughMatches(19, 20)

	if !errors.Is(a, b) {
		t.Error("same-code errors should compare equal under errors.Is")
	}
	if errors.Is(a, PlayerNotFound("x")) {
		t.Error("different-code errors must not compare equal")
	}
}

func TestAPIRequestPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := APIRequest(cause)

	if !errors.Is(err, cause) {
		t.Error("cause should survive unwrapping")
	}
	if got := err.Error(); got != "api request failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNoQualifyingMatchesSharesNotFoundCode(t *testing.T) {
	if !IsCode(NoQualifyingMatches("alpha"), CodeMatchStatsNotFound) {
		t.Error("zero qualifying rounds should read as match stats not found")
	}
}
