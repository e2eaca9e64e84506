package diag

import (
	"errors"
	"fmt"
	"testing"

	"rcc/internal/source"
)

func TestErrorMessageIsVerbatim(t *testing.T) {
	err := Errorf("identifier `%s` not found", "x")
	if err.Error() != "identifier `x` not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.HasSpan {
		t.Fatalf("span should be unset")
	}
}

func TestUnimplementedMatchesSentinel(t *testing.T) {
	err := Unimplemented(source.Span{Start: 1, End: 4}, "if expr")
	if err.Error() != "unimplemented: if expr" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	wrapped := fmt.Errorf("main.rs: %w", err)
	if !errors.Is(wrapped, ErrUnimplemented) {
		t.Fatalf("errors.Is should see ErrUnimplemented")
	}
	got, ok := AsError(wrapped)
	if !ok || got != err {
		t.Fatalf("AsError lost the carrier")
	}
}

func TestWithSpanKeepsFirst(t *testing.T) {
	first := source.Span{Start: 2, End: 3}
	err := At(first, "boom").WithSpan(source.Span{Start: 9, End: 10}).InPhase(PhaseParse).InPhase(PhaseLex)
	if err.Span != first {
		t.Fatalf("span overwritten: %v", err.Span)
	}
	if err.Phase != PhaseParse {
		t.Fatalf("phase overwritten: %v", err.Phase)
	}
}
