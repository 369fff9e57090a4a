package models

import "github.com/uptrace/bun"

// MemberJoinMessage is a tracking row. Identifiers are decimal text, see database.EncodeID.
type MemberJoinMessage struct {
	bun.BaseModel `bun:"table:member_join_messages,alias:mjm"`

	ID            int64  `bun:"id,pk,autoincrement"`
	DiscordUserID string `bun:"discord_user_id,notnull"`
	MessageID     string `bun:"message_id,notnull"`
	Stage         int64  `bun:"stage,notnull"`
}
