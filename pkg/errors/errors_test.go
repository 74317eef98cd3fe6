package errors

import (
	stderrors "errors"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("token", "required value is missing", nil)
	want := "configuration error: token: required value is missing"
	if err.Error() != want {
		t.Errorf("ConfigError.Error() = %q, want %q", err.Error(), want)
	}

	err = &ConfigError{Message: "no store configured"}
	want = "configuration error: no store configured"
	if err.Error() != want {
		t.Errorf("ConfigError.Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrorIsInvalidInput(t *testing.T) {
	err := NewValidationError("scopeID", "", "must not be empty")
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should report true")
	}
}

func TestAPIErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with upstream code",
			err:  &APIError{Source: "slack", Code: "channel_not_found", Message: "no such channel"},
			want: "API error from slack (channel_not_found): no such channel",
		},
		{
			name: "with status code",
			err:  &APIError{Source: "slack", StatusCode: 502, Message: "bad gateway"},
			want: "API error from slack (status 502): bad gateway",
		},
		{
			name: "bare",
			err:  &APIError{Source: "slack", Message: "connection refused"},
			want: "API error from slack: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	rateLimited := &APIError{Source: "slack", Code: "ratelimited", Message: "slow down"}
	if !stderrors.Is(rateLimited, ErrRateLimited) {
		t.Error("ratelimited code should match ErrRateLimited")
	}

	unavailable := &APIError{Source: "slack", StatusCode: 503}
	if !stderrors.Is(unavailable, ErrSourceUnavailable) {
		t.Error("5xx status should match ErrSourceUnavailable")
	}

	plain := &APIError{Source: "slack", StatusCode: 404}
	if stderrors.Is(plain, ErrRateLimited) || stderrors.Is(plain, ErrSourceUnavailable) {
		t.Error("404 should match neither sentinel")
	}
}

func TestShapeErrorIsInvalidInput(t *testing.T) {
	err := &ShapeError{Row: 2, Want: 3, Got: 1}
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("ShapeError should match ErrInvalidInput")
	}
	want := "row 2 has 1 columns, want 3"
	if err.Error() != want {
		t.Errorf("ShapeError.Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrapChain(t *testing.T) {
	inner := stderrors.New("boom")
	err := NewSyncError("C123", []string{"U1"}, WrapIO("read", "members", inner))
	if !stderrors.Is(err, inner) {
		t.Error("wrapped cause should be reachable through the chain")
	}
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	if WrapIO("read", "members", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if WrapParse("json", "", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}
	if WrapAPI("slack", "users.info", nil) != nil {
		t.Error("WrapAPI(nil) should be nil")
	}
}
