package errs_test

import (
	"errors"
	"strings"
	"testing"

	"tnivo/internal/errs"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := errs.Wrap(errs.ErrTransient, "organize", "move file", "rename failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errs.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"organize", "move file", "rename failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := errs.Wrap(nil, "reverse", "replay", "", nil)
	if !errors.Is(err, errs.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestUsageClassification(t *testing.T) {
	if !errs.Usage(errs.Wrap(errs.ErrValidation, "organize", "compile pattern", "empty pattern", nil)) {
		t.Fatal("expected validation error to classify as usage")
	}
	if !errs.Usage(errs.Wrap(errs.ErrConfiguration, "config", "load", "bad toml", nil)) {
		t.Fatal("expected configuration error to classify as usage")
	}
	if errs.Usage(errs.Wrap(errs.ErrTransient, "organize", "move", "io", errors.New("io"))) {
		t.Fatal("did not expect transient error to classify as usage")
	}
	if errs.Usage(nil) {
		t.Fatal("nil error must not classify as usage")
	}
}
