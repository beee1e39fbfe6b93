package flow

import (
	"context"
	"errors"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/model"
	"github.com/twoloonies/loonies/internal/submit"
)

// SubmitState is the state of the submission flow.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitConfirming
	SubmitSubmitted
)

func (s SubmitState) String() string {
	switch s {
	case SubmitConfirming:
		return "confirming"
	case SubmitSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// ErrWrongState is returned for transitions the current state does not allow.
var ErrWrongState = errors.New("submission is not awaiting confirmation")

// EntryChecker reports whether there is anything to submit.
type EntryChecker interface {
	HasAnyEntries() bool
}

// Builder produces the submission document.
type Builder interface {
	BuildSubmission() (model.Submission, error)
}

// Submission walks the user from the submit button through confirmation.
type Submission struct {
	state   SubmitState
	pending *model.Submission
	last    model.Submission
}

// State returns the current state.
func (s *Submission) State() SubmitState { return s.state }

// Last returns the most recently delivered document.
func (s *Submission) Last() model.Submission { return s.last }

// Request moves to confirming, or returns budget.ErrNoEntries and stays idle
// when no field holds a positive value.
func (s *Submission) Request(c EntryChecker) error {
	if s.state == SubmitConfirming {
		return nil
	}
	if !c.HasAnyEntries() {
		s.state = SubmitIdle
		return budget.ErrNoEntries
	}
	s.state = SubmitConfirming
	return nil
}

// Preview builds the document shown for confirmation and pins it: Confirm
// delivers exactly this document, timestamp included.
func (s *Submission) Preview(b Builder) (model.Submission, error) {
	if s.state != SubmitConfirming {
		return model.Submission{}, ErrWrongState
	}
	doc, err := s.build(b)
	if err != nil {
		return model.Submission{}, err
	}
	s.pending = &doc
	return doc, nil
}

// Confirm hands the previewed document to sink, or builds a fresh one when
// nothing was previewed. If delivery fails the flow stays in confirming with
// the same document so the user can retry or cancel.
func (s *Submission) Confirm(ctx context.Context, b Builder, sink submit.Sink) (model.Submission, error) {
	if s.state != SubmitConfirming {
		return model.Submission{}, ErrWrongState
	}
	if s.pending == nil {
		doc, err := s.build(b)
		if err != nil {
			return model.Submission{}, err
		}
		s.pending = &doc
	}
	doc := *s.pending
	if err := sink.Deliver(ctx, doc); err != nil {
		return model.Submission{}, err
	}
	s.state = SubmitSubmitted
	s.pending = nil
	s.last = doc
	return doc, nil
}

func (s *Submission) build(b Builder) (model.Submission, error) {
	doc, err := b.BuildSubmission()
	if err != nil {
		if errors.Is(err, budget.ErrNoEntries) {
			s.state = SubmitIdle
		}
		return model.Submission{}, err
	}
	return doc, nil
}

// Cancel abandons a pending confirmation.
func (s *Submission) Cancel() {
	if s.state == SubmitConfirming {
		s.state = SubmitIdle
	}
	s.pending = nil
}

// Reset returns to idle after a completed submission.
func (s *Submission) Reset() {
	s.state = SubmitIdle
	s.pending = nil
}
