package batch

import (
	"errors"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK("doc-1")
	if r.ID() != "doc-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	r := NewError("doc-2", err)
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestFailedAndJoin(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	results := []Result{NewOK("1"), NewError("", errA), NewOK("3"), NewError("", errB)}

	if got := Failed(results); got != 2 {
		t.Errorf("Failed() = %d, want 2", got)
	}
	joined := Join(results)
	if !errors.Is(joined, errA) || !errors.Is(joined, errB) {
		t.Errorf("Join() = %v, want both item errors", joined)
	}
}

func TestJoin_AllOK(t *testing.T) {
	if err := Join([]Result{NewOK("1"), NewOK("2")}); err != nil {
		t.Errorf("Join() = %v, want nil", err)
	}
	if err := Join(nil); err != nil {
		t.Errorf("Join(nil) = %v, want nil", err)
	}
}
