package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/domain/roster"
)

const (
	CustomIDRegister = "/nmi-button"
	CustomIDForm     = "/nmi-modal"
	CustomIDComplete = "/complete-registration"
	CustomIDUndo     = "/undo-completed"

	InputChapter   = "chapter_number"
	InputCharacter = "character_name"
	InputRealm     = "realm_name"

	ColorAwaiting  = 0xFFCC4D
	ColorSubmitted = 0xFF9900
	ColorCompleted = 0x57F287
	ColorWelcome   = 0xA724FF

	fieldMember    = "Member"
	fieldCharacter = "Character Name"
	fieldRealm     = "Realm"
	fieldChapter   = "Chapter"
	fieldUserID    = "User Id"
	fieldStatus    = "Status"

	missingValue = "⚠️"
)

var statusText = map[onboarding.Stage]string{
	onboarding.NewMember:  "🔄 Awaiting Onboarding",
	onboarding.Onboarding: "🔄 Awaiting Officer Approval",
	onboarding.Completed:  "🎉 Onboarding Complete!",
}

// BuildEmbed renders the tracking message embed for view.
func BuildEmbed(view onboarding.View) discord.Embed {
	d := view.Details
	b := discord.NewEmbedBuilder().SetTimestamp(time.Now())

	switch view.Stage {
	case onboarding.NewMember:
		b.SetAuthorName("New Member Joined").SetColor(ColorAwaiting)
	case onboarding.Onboarding:
		b.SetAuthorName("Member Onboarding Submitted").
			SetTitle("⚠️ IMPORTANT REMINDER").
			SetDescription("Warning! Only mark complete after promoting this member in-game to full member status.").
			SetColor(ColorSubmitted)
	case onboarding.Completed:
		b.SetAuthorName("Member Onboarding Completed").SetColor(ColorCompleted)
	}

	b.AddField(fieldMember, mention(d.MemberID), true).
		AddField(fieldCharacter, orMissing(d.CharacterName), true).
		AddField(fieldRealm, orMissing(d.Realm), true)
	if view.Stage != onboarding.NewMember {
		b.AddField(fieldChapter, orMissing(d.Chapter), true)
	}
	return b.AddField(fieldUserID, d.MemberID.String(), false).
		AddField(fieldStatus, statusText[view.Stage], false).
		Build()
}

// BuildComponents returns the officer buttons shown for a stage.
func BuildComponents(stage onboarding.Stage) []discord.ContainerComponent {
	switch stage {
	case onboarding.Onboarding:
		return []discord.ContainerComponent{
			discord.NewActionRow(discord.NewSuccessButton("Mark Complete", CustomIDComplete)),
		}
	case onboarding.Completed:
		return []discord.ContainerComponent{
			discord.NewActionRow(discord.NewSecondaryButton("Undo Completed", CustomIDUndo)),
		}
	default:
		return []discord.ContainerComponent{}
	}
}

// ParseDetails reads member details back from a tracking message embed.
// Fields that are missing or still show the placeholder come back empty.
func ParseDetails(embed discord.Embed) onboarding.Details {
	var d onboarding.Details
	for _, f := range embed.Fields {
		value := strings.TrimSpace(f.Value)
		if value == missingValue {
			continue
		}
		switch f.Name {
		case fieldUserID:
			if id, err := snowflake.Parse(value); err == nil {
				d.MemberID = id
			}
		case fieldMember:
			if d.MemberID != 0 {
				continue
			}
			if id, err := snowflake.Parse(strings.Trim(value, "<@!>")); err == nil {
				d.MemberID = id
			}
		case fieldCharacter:
			d.CharacterName = value
		case fieldRealm:
			d.Realm = value
		case fieldChapter:
			d.Chapter = value
		}
	}
	return d
}

// WelcomeMessage is the pinned entry point: the chapter list and the button
// that opens the registration form.
func WelcomeMessage(r roster.Roster) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("Welcome to the guild!").
		SetDescription("Find your chapter number below, then press **Chapter Form.** to register your character.\n\n" + r.FormattedList()).
		SetColor(ColorWelcome).
		Build()
	return discord.MessageCreate{
		Embeds: []discord.Embed{embed},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewPrimaryButton("Chapter Form.", CustomIDRegister)),
		},
	}
}

// RegistrationModal is the character registration form opened by the welcome button.
func RegistrationModal() discord.ModalCreate {
	return discord.ModalCreate{
		CustomID: CustomIDForm,
		Title:    "NMI Character Registration",
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewShortTextInput(InputChapter, "Chapter Number").
				WithPlaceholder("e.g. 3").
				WithMinLength(1).
				WithMaxLength(2).
				WithRequired(true)),
			discord.NewActionRow(discord.NewShortTextInput(InputCharacter, "Character Name").
				WithMinLength(2).
				WithMaxLength(14).
				WithRequired(true)),
			discord.NewActionRow(discord.NewShortTextInput(InputRealm, "Realm Name").
				WithMinLength(2).
				WithMaxLength(20).
				WithRequired(true)),
		},
	}
}

func mention(id snowflake.ID) string {
	if id == 0 {
		return missingValue
	}
	return fmt.Sprintf("<@%s>", id)
}

func orMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingValue
	}
	return value
}
