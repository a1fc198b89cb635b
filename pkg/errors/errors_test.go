package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		name      string
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{name: "validation", code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{name: "unauthorized", code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{name: "forbidden", code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{name: "not found", code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{name: "conflict", code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{name: "state conflict", code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{name: "idempotency", code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{name: "rate limit", code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{name: "internal", code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{name: "dependency", code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := MetadataFor(tt.code)
			if meta.HTTPStatus != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, meta.HTTPStatus)
			}
			if meta.PublicMessage != tt.publicMsg {
				t.Fatalf("expected public message %q, got %q", tt.publicMsg, meta.PublicMessage)
			}
			if meta.Retryable != tt.retryable {
				t.Fatalf("expected retryable %v, got %v", tt.retryable, meta.Retryable)
			}
			if meta.DetailsAllowed != tt.detailsOK {
				t.Fatalf("expected details allowed %v, got %v", tt.detailsOK, meta.DetailsAllowed)
			}
		})
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("NO_SUCH_CODE")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
	if meta.DetailsAllowed {
		t.Fatal("unknown codes must not expose details")
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "quantity must be positive")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "quantity must be positive" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatal("details should start nil")
	}

	base.WithDetails(map[string]any{"field": "quantity"})
	if base.Details() == nil {
		t.Fatal("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "saving supplier")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("Wrap lost the cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeNotFound, nil, "no such product")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "admins only")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatal("As failed to return the typed error")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("As should ignore untyped errors")
	}
	if As(nil) != nil {
		t.Fatal("As(nil) should return nil")
	}
}
