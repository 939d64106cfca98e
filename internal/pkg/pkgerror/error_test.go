package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeBusiness.String(); got != "ERROR_TYPE_BUSINESS" {
		t.Fatalf("unexpected business string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	if got := CodeInvalidFormat.String(); got != "ERROR_CODE_INVALID_FORMAT" {
		t.Fatalf("unexpected invalid format string: %q", got)
	}
	if got := CodeTimeout.String(); got != "ERROR_CODE_TIMEOUT" {
		t.Fatalf("unexpected timeout string: %q", got)
	}
	if got := Code(99).String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected default code string: %q", got)
	}
}

func TestServerError(t *testing.T) {
	root := errors.New("disk full")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Error(); got != "disk full" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestUploadErrors(t *testing.T) {
	empty := NewInvalidInput(errors.New("empty file")).(*Error)
	if got := empty.StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected empty file status: %d", got)
	}
	if got := empty.Error(); got != "empty file" {
		t.Fatalf("unexpected empty file error: %q", got)
	}

	root := errors.New("line 1: missing amount")
	invalid := NewInvalidFile(root).(*Error)
	if got := invalid.Msg(); got != "invalid file" {
		t.Fatalf("unexpected invalid file msg: %q", got)
	}
	if got := invalid.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("unexpected invalid file status: %d", got)
	}
	if !errors.Is(invalid, root) {
		t.Fatalf("expected invalid file to wrap cause")
	}
}

func TestNotFound(t *testing.T) {
	err := NewNotFound("import not found")
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}
	if got := err.(*Error).StatusCode(); got != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", got)
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("expected wrapped CodeNotFound")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Fatalf("plain error must not match")
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", TypeValidation, CodeInternal).(*Error)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	business := new(nil, "", TypeBusiness, CodeInternal).(*Error)
	if got := business.Error(); got != "Logical business not meet with requirement" {
		t.Fatalf("unexpected business fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewBusiness("duplicate import", CodeConflict).(*Error)
	str := err.String()
	if !strings.Contains(str, "ERROR_TYPE_BUSINESS") {
		t.Fatalf("expected error type in string: %q", str)
	}
	if !strings.Contains(str, "ERROR_CODE_CONFLICT") {
		t.Fatalf("expected error code in string: %q", str)
	}
	if !strings.Contains(str, "duplicate import") {
		t.Fatalf("expected message in string: %q", str)
	}
}
