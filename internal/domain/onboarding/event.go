package onboarding

import "github.com/disgoorg/snowflake/v2"

// Event is one of the platform events that drive onboarding.
// The set is closed: MemberJoined, FormSubmitted, CompletionMarked and CompletionUndone.
type Event interface {
	Name() string
	isEvent()
}

type MemberJoined struct {
	MemberID snowflake.ID
}

// FormSubmitted carries the raw registration form values. ChapterInput is
// the text the member typed and is validated by ResolveChapter.
type FormSubmitted struct {
	MemberID      snowflake.ID
	ChapterInput  string
	CharacterName string
	Realm         string
}

// CompletionMarked is an officer confirming the member on the tracking message MessageID.
// Details are read back from the message so a new message can be rendered when the record is gone.
type CompletionMarked struct {
	MessageID snowflake.ID
	Details   Details
}

type CompletionUndone struct {
	MessageID snowflake.ID
	Details   Details
}

func (MemberJoined) Name() string     { return "member_joined" }
func (FormSubmitted) Name() string    { return "form_submitted" }
func (CompletionMarked) Name() string { return "completion_marked" }
func (CompletionUndone) Name() string { return "completion_undone" }

func (MemberJoined) isEvent()     {}
func (FormSubmitted) isEvent()    {}
func (CompletionMarked) isEvent() {}
func (CompletionUndone) isEvent() {}
