package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/oldgods/nmibot/internal/domain/roster"
)

func TestChapterPage(t *testing.T) {
	var r roster.Roster
	for i := range 12 {
		r.Chapters = append(r.Chapters, roster.Chapter{Name: fmt.Sprintf("Chapter%02d", i), RoleID: uint64(500 + i)})
	}

	first := chapterPage(r, 0)
	if got := strings.Count(first, "\n"); got != chaptersPerPage {
		t.Errorf("chapterPage(0) lines = %d, want %d", got, chaptersPerPage)
	}
	if !strings.Contains(first, "` 0` **Chapter00** <@&500>") {
		t.Errorf("chapterPage(0) = %q", first)
	}

	last := chapterPage(r, 1)
	if got := strings.Count(last, "\n"); got != 2 {
		t.Errorf("chapterPage(1) lines = %d, want 2", got)
	}
	if !strings.Contains(last, "`11` **Chapter11**") {
		t.Errorf("chapterPage(1) = %q", last)
	}
}

func TestMessageLink(t *testing.T) {
	if got := messageLink(1, 2, 3); got != "https://discord.com/channels/1/2/3" {
		t.Errorf("messageLink() = %q", got)
	}
}

func TestCommandNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		name := c.CommandName()
		if seen[name] {
			t.Errorf("command %q registered twice", name)
		}
		seen[name] = true
	}
	if len(seen) != 5 {
		t.Errorf("registered %d commands, want 5", len(seen))
	}
}
