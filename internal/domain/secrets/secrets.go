package secrets

import (
	"errors"
	"slices"

	"github.com/disgoorg/snowflake/v2"
)

var (
	ErrMissingToken   = errors.New("secrets: token is required")
	ErrMissingGuild   = errors.New("secrets: guild_id is required")
	ErrMissingChannel = errors.New("secrets: welcome_channel_id is required")
)

// Secrets is the operational secrets document.
type Secrets struct {
	GuildID          uint64   `json:"guild_id"`
	Token            string   `json:"token"`
	AuthorizedIDs    []uint64 `json:"authorized_ids"`
	WelcomeChannelID uint64   `json:"welcome_channel_id"`
	NewMemberRoleID  uint64   `json:"new_member_role_id"`
	MemberRoleID     uint64   `json:"member_role_id"`
}

func (s Secrets) Guild() snowflake.ID          { return snowflake.ID(s.GuildID) }
func (s Secrets) ReviewChannel() snowflake.ID  { return snowflake.ID(s.WelcomeChannelID) }
func (s Secrets) NewMemberRole() snowflake.ID  { return snowflake.ID(s.NewMemberRoleID) }
func (s Secrets) MemberRole() snowflake.ID     { return snowflake.ID(s.MemberRoleID) }

// Authorized reports whether id may run officer-only commands.
func (s Secrets) Authorized(id snowflake.ID) bool {
	return slices.Contains(s.AuthorizedIDs, uint64(id))
}

func (s Secrets) Validate() error {
	switch {
	case s.Token == "":
		return ErrMissingToken
	case s.GuildID == 0:
		return ErrMissingGuild
	case s.WelcomeChannelID == 0:
		return ErrMissingChannel
	}
	return nil
}
