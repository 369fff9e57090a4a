package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/roster"
)

// Render tells the orchestrator how a view reaches the review channel.
type Render int

const (
	RenderCreate Render = iota
	RenderEdit
)

func (r Render) String() string {
	if r == RenderEdit {
		return "edit"
	}
	return "create"
}

// Decision is the outcome of applying an event to the current record.
type Decision struct {
	// Tracked is false when no record was found; From is meaningless then.
	Tracked bool
	From    Stage
	To      Stage
	Render  Render
	// Target is the message to edit when Render is RenderEdit.
	Target snowflake.ID
}

// View returns the view to render for the decision.
func (d Decision) View(details Details) View {
	return View{Stage: d.To, Details: details}
}

// Decide computes the next stage for event given the current record, which is nil
// when the lookup missed. It has no side effects.
func Decide(event Event, current *Record) (Decision, error) {
	d := Decision{Render: RenderCreate}
	if current != nil {
		d.Tracked = true
		d.From = current.Stage
	}

	switch event.(type) {
	case MemberJoined:
		// A rejoin gets a fresh announcement; older records are left as history.
		d.To = NewMember
		return d, nil

	case FormSubmitted:
		if current != nil && current.Stage == Completed {
			return d, transitionError(event, current.Stage)
		}
		d.To = Onboarding

	case CompletionMarked:
		if current != nil && current.Stage != Onboarding {
			return d, transitionError(event, current.Stage)
		}
		d.To = Completed

	case CompletionUndone:
		if current != nil && current.Stage != Completed {
			return d, transitionError(event, current.Stage)
		}
		d.To = Onboarding

	default:
		return d, fmt.Errorf("unsupported event %T: %w", event, ErrInvalidTransition)
	}

	if current != nil {
		d.Render = RenderEdit
		d.Target = current.MessageID
	}
	return d, nil
}

func transitionError(event Event, from Stage) error {
	return fmt.Errorf("%s from %s: %w", event.Name(), from, ErrInvalidTransition)
}

// ResolveChapter parses the chapter number typed into the registration form.
// Non-numeric and out of range input are rejected alike with ErrInvalidChapter.
func ResolveChapter(input string, chapters ChapterLookup) (int, roster.Chapter, error) {
	input = strings.TrimSpace(input)
	index, err := strconv.Atoi(input)
	if err != nil || !isDigits(input) {
		return 0, roster.Chapter{}, fmt.Errorf("%q is not a number: %w", input, ErrInvalidChapter)
	}
	chapter, ok := chapters.Chapter(index)
	if !ok {
		return 0, roster.Chapter{}, fmt.Errorf("chapter %d is outside [0, %d): %w", index, chapters.Count(), ErrInvalidChapter)
	}
	return index, chapter, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits. Signs are
// rejected so "+1" and "-0" do not resolve.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
