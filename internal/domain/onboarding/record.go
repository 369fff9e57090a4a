package onboarding

import "github.com/disgoorg/snowflake/v2"

// Record is the stored onboarding progress of one member.
type Record struct {
	ID        int64
	MemberID  snowflake.ID
	MessageID snowflake.ID
	Stage     Stage
}

// Details is what a view shows about the member being onboarded.
type Details struct {
	MemberID      snowflake.ID
	CharacterName string
	Realm         string
	Chapter       string
}

// View is the rendered representation of a stage in the review channel.
type View struct {
	Stage   Stage
	Details Details
}
