package platform

import (
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/domain/roster"
)

func fieldValue(embed discord.Embed, name string) string {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestBuildEmbed(t *testing.T) {
	tests := []struct {
		name       string
		view       onboarding.View
		wantAuthor string
		wantStatus string
		wantChar   string
	}{
		{
			name:       "NewMember",
			view:       onboarding.View{Stage: onboarding.NewMember, Details: onboarding.Details{MemberID: 1001}},
			wantAuthor: "New Member Joined",
			wantStatus: "🔄 Awaiting Onboarding",
			wantChar:   "⚠️",
		},
		{
			name:       "Onboarding",
			view:       onboarding.View{Stage: onboarding.Onboarding, Details: bjork},
			wantAuthor: "Member Onboarding Submitted",
			wantStatus: "🔄 Awaiting Officer Approval",
			wantChar:   "Bjork",
		},
		{
			name:       "Completed",
			view:       onboarding.View{Stage: onboarding.Completed, Details: bjork},
			wantAuthor: "Member Onboarding Completed",
			wantStatus: "🎉 Onboarding Complete!",
			wantChar:   "Bjork",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := BuildEmbed(tt.view)
			if embed.Author == nil || embed.Author.Name != tt.wantAuthor {
				t.Errorf("BuildEmbed() author = %v, want %q", embed.Author, tt.wantAuthor)
			}
			if got := fieldValue(embed, fieldStatus); got != tt.wantStatus {
				t.Errorf("BuildEmbed() status = %q, want %q", got, tt.wantStatus)
			}
			if got := fieldValue(embed, fieldCharacter); got != tt.wantChar {
				t.Errorf("BuildEmbed() character = %q, want %q", got, tt.wantChar)
			}
			if got := fieldValue(embed, fieldMember); got != "<@1001>" {
				t.Errorf("BuildEmbed() member = %q, want <@1001>", got)
			}
		})
	}
}

func TestBuildComponents(t *testing.T) {
	tests := []struct {
		stage    onboarding.Stage
		customID string
	}{
		{onboarding.NewMember, ""},
		{onboarding.Onboarding, CustomIDComplete},
		{onboarding.Completed, CustomIDUndo},
	}
	for _, tt := range tests {
		rows := BuildComponents(tt.stage)
		if tt.customID == "" {
			if len(rows) != 0 {
				t.Errorf("BuildComponents(%s) = %v, want none", tt.stage, rows)
			}
			continue
		}
		if len(rows) != 1 {
			t.Fatalf("BuildComponents(%s) rows = %d, want 1", tt.stage, len(rows))
		}
		row, ok := rows[0].(discord.ActionRowComponent)
		if !ok || len(row.Components()) != 1 {
			t.Fatalf("BuildComponents(%s) = %#v", tt.stage, rows[0])
		}
		button, ok := row.Components()[0].(discord.ButtonComponent)
		if !ok || button.CustomID != tt.customID {
			t.Errorf("BuildComponents(%s) button = %#v, want custom id %q", tt.stage, button, tt.customID)
		}
	}
}

func TestParseDetails(t *testing.T) {
	joined := ParseDetails(BuildEmbed(onboarding.View{Stage: onboarding.NewMember, Details: onboarding.Details{MemberID: 1001}}))
	if joined != (onboarding.Details{MemberID: 1001}) {
		t.Errorf("ParseDetails(join view) = %+v", joined)
	}

	// Messages posted by older versions only carry the mention.
	legacy := discord.Embed{Fields: []discord.EmbedField{
		{Name: "Member", Value: "<@!2002>"},
		{Name: "Character Name", Value: "Thrall"},
	}}
	got := ParseDetails(legacy)
	if got.MemberID != 2002 || got.CharacterName != "Thrall" {
		t.Errorf("ParseDetails(legacy) = %+v", got)
	}

	if got := ParseDetails(discord.Embed{}); got != (onboarding.Details{}) {
		t.Errorf("ParseDetails(empty) = %+v", got)
	}
}

func TestWelcomeMessage(t *testing.T) {
	r := roster.Roster{Chapters: []roster.Chapter{{Name: "Aegwynn", RoleID: 500}, {Name: "Illidan", RoleID: 501}}}
	msg := WelcomeMessage(r)

	if len(msg.Embeds) != 1 || !strings.Contains(msg.Embeds[0].Description, "[1] Illidan") {
		t.Fatalf("WelcomeMessage() embeds = %+v", msg.Embeds)
	}
	if msg.Embeds[0].Color != ColorWelcome {
		t.Errorf("WelcomeMessage() color = %#x, want %#x", msg.Embeds[0].Color, ColorWelcome)
	}
	row, ok := msg.Components[0].(discord.ActionRowComponent)
	if !ok {
		t.Fatalf("WelcomeMessage() components = %#v", msg.Components)
	}
	if button, ok := row.Components()[0].(discord.ButtonComponent); !ok || button.CustomID != CustomIDRegister {
		t.Errorf("WelcomeMessage() button = %#v", row.Components()[0])
	}
}

func TestRegistrationModal(t *testing.T) {
	modal := RegistrationModal()
	if modal.CustomID != CustomIDForm {
		t.Errorf("RegistrationModal() custom id = %q", modal.CustomID)
	}

	var ids []string
	for _, c := range modal.Components {
		row := c.(discord.ActionRowComponent)
		input := row.Components()[0].(discord.TextInputComponent)
		ids = append(ids, input.CustomID)
	}
	want := []string{InputChapter, InputCharacter, InputRealm}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("RegistrationModal() inputs = %v, want %v", ids, want)
	}
}
