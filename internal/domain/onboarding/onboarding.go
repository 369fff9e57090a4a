package onboarding

import (
	"context"

	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/disgoorg/snowflake/v2"
)

// Repository persists onboarding records.
type Repository interface {
	// Create appends a record. Existing records for the member are left untouched.
	Create(ctx context.Context, memberID, messageID snowflake.ID, stage Stage) (*Record, error)
	// UpdateStage sets the stage of record, identified by its ID, and updates record on success.
	UpdateStage(ctx context.Context, record *Record, stage Stage) error
	FindByMember(ctx context.Context, memberID snowflake.ID) (*Record, error)
	FindByTrackingMessage(ctx context.Context, messageID snowflake.ID) (*Record, error)
}

// Platform is the chat platform as seen by the onboarding workflow.
type Platform interface {
	SendView(ctx context.Context, channelID snowflake.ID, view View) (snowflake.ID, error)
	EditView(ctx context.Context, channelID, messageID snowflake.ID, view View) error
	GrantRole(ctx context.Context, memberID, roleID snowflake.ID) error
	RevokeRole(ctx context.Context, memberID, roleID snowflake.ID) error
	DirectMessage(ctx context.Context, memberID snowflake.ID, content string) error
}

// ChapterLookup resolves chapter indices. roster.Roster implements it.
type ChapterLookup interface {
	Chapter(index int) (roster.Chapter, bool)
	Count() int
}

// TransitionObserver is notified of every transition that was rendered.
type TransitionObserver interface {
	ObserveTransition(event Event, decision Decision, persisted bool)
}

// Settings are the guild identifiers the workflow acts on.
type Settings struct {
	ReviewChannelID snowflake.ID
	NewMemberRoleID snowflake.ID
	MemberRoleID    snowflake.ID
}
