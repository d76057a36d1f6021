package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the closed set of recipe difficulties.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Media"
	DifficultyHard   Difficulty = "Difícil"
)

// Difficulties lists the values offered by the authoring form.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Known reports whether d is one of the three recognised difficulties.
// Other values coming from the backend are kept for display only.
func (d Difficulty) Known() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Categories offered by the authoring form.
var Categories = []string{"Desayuno", "Comida", "Cena", "Snack", "Postre"}

const (
	DefaultCategory   = "Comida"
	DefaultDifficulty = DifficultyMedium
)

// Quantity is an ingredient amount. The backend sends numbers on reads and
// accepts free-form strings ("200 g") on writes.
type Quantity string

// UnmarshalJSON accepts a JSON string, number or null.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null" || s == "":
		*q = ""
	case s[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*q = Quantity(str)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %s: %w", s, err)
		}
		*q = Quantity(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	ID       int64    `json:"ingredient_id,omitempty"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
	Unit     string   `json:"unit,omitempty"`
}

// Display renders the amount the way the authoring form edits it: the
// quantity followed by its unit, omitting the generic "ud" unit.
func (i Ingredient) Display() string {
	q := strings.TrimSpace(string(i.Quantity))
	u := strings.TrimSpace(i.Unit)
	if u == "" || u == "ud" {
		return q
	}
	if q == "" {
		return u
	}
	return q + " " + u
}

// Recipe as returned by the feed, detail and profile endpoints.
type Recipe struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Instructions string       `json:"instructions"`
	Category     string       `json:"category"`
	PrepTime     int          `json:"prep_time"`
	Difficulty   Difficulty   `json:"difficulty"`
	Calories     int          `json:"calories"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Author       string       `json:"author,omitempty"`
	AuthorID     int64        `json:"author_id"`
	AuthorAvatar string       `json:"author_avatar,omitempty"`
	MainImageURL string       `json:"main_image_url,omitempty"`
	VideoURL     string       `json:"video_url,omitempty"`
	IsLiked      bool         `json:"is_liked,omitempty"`
	LikesCount   int          `json:"likes_count"`
	CreatedAt    string       `json:"created_at,omitempty"`
}

// HasVideo reports whether the recipe carries a VHS badge.
func (r Recipe) HasVideo() bool {
	return r.VideoURL != ""
}

// AuthorSummary is the stub identity used when navigating to the author.
func (r Recipe) AuthorSummary() UserSummary {
	return UserSummary{ID: r.AuthorID, Username: r.Author, AvatarURL: r.AuthorAvatar}
}

// CanBeEditedBy reports whether viewer may edit or delete the recipe:
// its author or an admin.
func (r Recipe) CanBeEditedBy(viewer *UserSummary) bool {
	if viewer == nil || viewer.ID == 0 {
		return false
	}
	return viewer.ID == r.AuthorID || viewer.Rol.IsAdmin()
}

// Step is one numbered preparation step derived from the instructions.
type Step struct {
	Number int
	Title  string
	Text   string
}

// DeriveSteps splits instructions on line breaks, drops blank lines and
// numbers the remainder from 1.
func DeriveSteps(instructions string) []Step {
	lines := strings.Split(strings.ReplaceAll(instructions, "\r\n", "\n"), "\n")
	steps := make([]Step, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(steps) + 1
		steps = append(steps, Step{Number: n, Title: fmt.Sprintf("Paso %d", n), Text: line})
	}
	return steps
}

// Toggle actions returned by like/follow endpoints.
const (
	ActionLiked      = "liked"
	ActionUnliked    = "unliked"
	ActionFollowed   = "followed"
	ActionUnfollowed = "unfollowed"
)

// ToggleResult is the response of a like or follow toggle.
type ToggleResult struct {
	Action     string `json:"action"`
	LikesCount int    `json:"likes_count,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
}
