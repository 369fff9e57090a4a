package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sahilm/fuzzy"
)

var (
	ErrEmptyName      = errors.New("chapter name cannot be empty")
	ErrMissingRole    = errors.New("chapter role id cannot be zero")
	ErrDuplicateName  = errors.New("chapter already exists")
	ErrUnknownChapter = errors.New("chapter not found")
)

const (
	chapterColumnWidth = 16
	chaptersPerRow     = 2
)

// Chapter is a named sub-group of the guild, mapped to the role granted to its members.
type Chapter struct {
	Name   string `json:"name"`
	RoleID uint64 `json:"role_id"`
}

// Role returns the chapter role as a Discord snowflake.
func (c Chapter) Role() snowflake.ID {
	return snowflake.ID(c.RoleID)
}

// Roster is the ordered chapter list. The position of a chapter in Chapters is
// the index members type into the registration form.
//
// A Roster value is treated as an immutable snapshot: mutating helpers return copies.
type Roster struct {
	Chapters []Chapter `json:"chapters"`
}

func (r Roster) Count() int {
	return len(r.Chapters)
}

// Chapter returns the chapter at index, reporting false when index is outside [0, Count()).
func (r Roster) Chapter(index int) (Chapter, bool) {
	if index < 0 || index >= len(r.Chapters) {
		return Chapter{}, false
	}
	return r.Chapters[index], true
}

// Index returns the position of the chapter with the exact (case-insensitive) name.
func (r Roster) Index(name string) (int, bool) {
	for i, c := range r.Chapters {
		if strings.EqualFold(c.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Validate implements the document validation hook used by the config cache.
func (r Roster) Validate() error {
	seen := make(map[string]struct{}, len(r.Chapters))
	for i, c := range r.Chapters {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("chapter[%d]: %w", i, ErrEmptyName)
		}
		if c.RoleID == 0 {
			return fmt.Errorf("chapter[%d] %s: %w", i, c.Name, ErrMissingRole)
		}
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("chapter[%d] %s: %w", i, c.Name, ErrDuplicateName)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// WithChapter returns a copy of the roster with c added and the chapters re-sorted by name.
func (r Roster) WithChapter(c Chapter) (Roster, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return r, ErrEmptyName
	}
	if c.RoleID == 0 {
		return r, ErrMissingRole
	}
	if _, ok := r.Index(c.Name); ok {
		return r, fmt.Errorf("%s: %w", c.Name, ErrDuplicateName)
	}

	chapters := make([]Chapter, 0, len(r.Chapters)+1)
	chapters = append(chapters, r.Chapters...)
	chapters = append(chapters, c)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Name < chapters[j].Name
	})
	return Roster{Chapters: chapters}, nil
}

// WithoutChapter returns a copy of the roster without the chapter at index.
func (r Roster) WithoutChapter(index int) (Roster, error) {
	if _, ok := r.Chapter(index); !ok {
		return r, fmt.Errorf("index %d: %w", index, ErrUnknownChapter)
	}
	chapters := make([]Chapter, 0, len(r.Chapters)-1)
	chapters = append(chapters, r.Chapters[:index]...)
	chapters = append(chapters, r.Chapters[index+1:]...)
	return Roster{Chapters: chapters}, nil
}

// Match is a fuzzy search hit.
type Match struct {
	Index   int
	Chapter Chapter
	Score   int
}

type chapterNames []Chapter

func (c chapterNames) String(i int) string { return c[i].Name }
func (c chapterNames) Len() int            { return len(c) }

// Find fuzzy-matches query against chapter names, best match first.
// An empty query returns every chapter in roster order.
func (r Roster) Find(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(r.Chapters))
		for i, c := range r.Chapters {
			matches[i] = Match{Index: i, Chapter: c}
		}
		return matches
	}

	results := fuzzy.FindFrom(query, chapterNames(r.Chapters))
	matches := make([]Match, len(results))
	for i, res := range results {
		matches[i] = Match{Index: res.Index, Chapter: r.Chapters[res.Index], Score: res.Score}
	}
	return matches
}

// Resolve picks the chapter named by query: an exact name wins, otherwise the best fuzzy match.
func (r Roster) Resolve(query string) (Match, error) {
	if i, ok := r.Index(strings.TrimSpace(query)); ok {
		return Match{Index: i, Chapter: r.Chapters[i]}, nil
	}
	matches := r.Find(query)
	if len(matches) == 0 || strings.TrimSpace(query) == "" {
		return Match{}, fmt.Errorf("%q: %w", query, ErrUnknownChapter)
	}
	return matches[0], nil
}

// FormattedList renders the chapter list the way it is shown in the welcome message,
// two chapters per row inside a code block.
func (r Roster) FormattedList() string {
	var b strings.Builder
	b.WriteString("Available Chapters:\n\n```")
	for i, c := range r.Chapters {
		num := i + 1
		b.WriteString(fmt.Sprintf("[%d] %s", i, c.Name))
		if pad := chapterColumnWidth - len([]rune(c.Name)); pad > 0 && num%chaptersPerRow != 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i < 10 {
			b.WriteString(" ")
		}
		if num%chaptersPerRow == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n```")
	return b.String()
}
