package callgen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeUnknownOperation, "no API found")
	if err.Code != CodeUnknownOperation {
		t.Errorf("expected code %s, got %s", CodeUnknownOperation, err.Code)
	}
	if err.Message != "no API found" {
		t.Errorf("expected message 'no API found', got %s", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeUnresolvedArgument, "no URL part found for %q", "foo")
	if err.Code != CodeUnresolvedArgument {
		t.Errorf("expected code %s, got %s", CodeUnresolvedArgument, err.Code)
	}
	if err.Message != `no URL part found for "foo"` {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(CodeTypeCoercionFailure, "size: cannot parse")
	expected := "type_coercion_failure: size: cannot parse"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestWithDetail(t *testing.T) {
	base := NewError(CodeEnumValidationFailure, "bad value")
	withParam := base.WithDetail("param", "refresh")
	withBoth := withParam.WithDetail("value", "bogus")

	if base.Details != nil {
		t.Errorf("WithDetail modified the original error: %v", base.Details)
	}
	if len(withParam.Details) != 1 {
		t.Errorf("expected 1 detail, got %v", withParam.Details)
	}
	want := map[string]any{"param": "refresh", "value": "bogus"}
	if diff := cmp.Diff(want, withBoth.Details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	e1 := NewError(CodeAmbiguousOrMissingTemplate, "no path")
	e2 := NewError(CodeUnresolvedArgument, "no URL part")
	e3 := NewError(CodeTypeCoercionFailure, "bad int")

	tests := []struct {
		name      string
		err       error
		wantCodes []ErrorCode
		wantMsgs  []string
	}{
		{
			name: "nil",
			err:  nil,
		},
		{
			name:      "single",
			err:       e1,
			wantCodes: []ErrorCode{CodeAmbiguousOrMissingTemplate},
			wantMsgs:  []string{"no path"},
		},
		{
			name:      "joined",
			err:       errors.Join(e1, e2),
			wantCodes: []ErrorCode{CodeAmbiguousOrMissingTemplate, CodeUnresolvedArgument},
			wantMsgs:  []string{"no path", "no URL part"},
		},
		{
			name:      "nested joins keep order",
			err:       errors.Join(errors.Join(e1, e2), e3),
			wantCodes: []ErrorCode{CodeAmbiguousOrMissingTemplate, CodeUnresolvedArgument, CodeTypeCoercionFailure},
			wantMsgs:  []string{"no path", "no URL part", "bad int"},
		},
		{
			name:      "wrapped",
			err:       fmt.Errorf("record 3: %w", e3),
			wantCodes: []ErrorCode{CodeTypeCoercionFailure},
			wantMsgs:  []string{"bad int"},
		},
		{
			name:      "foreign error",
			err:       errors.New("boom"),
			wantCodes: []ErrorCode{CodeInvalidRecord},
			wantMsgs:  []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.wantCodes, codes(tt.err)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			msgs := Messages(tt.err)
			if len(msgs) == 0 {
				msgs = nil
			}
			if diff := cmp.Diff(tt.wantMsgs, msgs); diff != "" {
				t.Errorf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := errors.Join(
		NewError(CodeEnumValidationFailure, "a"),
		NewError(CodeTypeCoercionFailure, "b"),
	)
	if !HasCode(err, CodeTypeCoercionFailure) {
		t.Error("expected HasCode to find type_coercion_failure")
	}
	if HasCode(err, CodeUnknownOperation) {
		t.Error("HasCode found a code that is not there")
	}
	if HasCode(nil, CodeUnknownOperation) {
		t.Error("HasCode(nil) should be false")
	}
}
