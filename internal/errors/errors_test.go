package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestAppErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewStorageError(ErrCodeStorageFailed, "failed to save analysis", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should unwrap to the cause")
	}
	if !strings.Contains(err.Error(), ErrCodeStorageFailed) {
		t.Errorf("Error() = %q, missing code", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidRequest, "resume text is empty", nil).
		WithContext("resume_id", "r-1")

	if err.Context["resume_id"] != "r-1" {
		t.Errorf("context = %v", err.Context)
	}
	if err.Type != ErrorTypeValidation {
		t.Errorf("type = %s, want validation", err.Type)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Error("unknown log level should be rejected")
	}
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := New(level); err != nil {
			t.Errorf("level %q rejected: %v", level, err)
		}
	}
}
