package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chefcommunity/client/internal/types"
)

// RecipeCard renders the compact feed card. selected highlights the title,
// checked adds the selection-mode mark.
func (s Styles) RecipeCard(r types.Recipe, width int, selected, checked bool) string {
	title := s.Bold.Render(r.Title)
	if selected {
		title = s.Selected.Render("▸ " + r.Title)
	}
	if checked {
		title = s.Notice.Render("[x] ") + title
	}

	badges := []string{s.DifficultyBadge(r.Difficulty)}
	if vhs := s.VHSBadge(r); vhs != "" {
		badges = append(badges, vhs)
	}

	meta := []string{}
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if r.PrepTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", r.PrepTime))
	}
	if r.Calories > 0 {
		meta = append(meta, fmt.Sprintf("%d kcal", r.Calories))
	}

	lines := []string{
		title,
		strings.Join(badges, " "),
	}
	if len(meta) > 0 {
		lines = append(lines, s.Muted.Render(strings.Join(meta, " · ")))
	}
	if r.Author != "" {
		lines = append(lines, s.Muted.Render("por @"+r.Author)+"  "+s.Likes(r.IsLiked, r.LikesCount))
	} else {
		lines = append(lines, s.Likes(r.IsLiked, r.LikesCount))
	}

	card := s.Card
	if width > 4 {
		card = card.Width(width - 2)
	}
	if selected {
		card = card.BorderForeground(Primary)
	}
	return card.Render(strings.Join(lines, "\n"))
}

// RecipeList stacks cards, or shows the feed's empty state.
func (s Styles) RecipeList(recipes []types.Recipe, width, cursor int, empty string, checked func(int64) bool) string {
	if len(recipes) == 0 {
		return s.EmptyState(empty)
	}
	cards := make([]string, len(recipes))
	for i, r := range recipes {
		mark := checked != nil && checked(r.ID)
		cards[i] = s.RecipeCard(r, width, i == cursor, mark)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RecipeTable lists recipes one per row for the CLI.
func (s Styles) RecipeTable(title string, recipes []types.Recipe, empty string) string {
	if len(recipes) == 0 {
		return s.EmptyState(empty)
	}
	t := NewTable(title, "ID", "TÍTULO", "CATEGORÍA", "DIFICULTAD", "AUTOR", "LIKES", "")
	for _, r := range recipes {
		t.AddRow(
			itoa64(r.ID),
			r.Title,
			r.Category,
			s.DifficultyBadge(r.Difficulty),
			r.Author,
			s.Likes(r.IsLiked, r.LikesCount),
			s.VHSBadge(r),
		)
	}
	return t.View(s)
}

// RecipeDetail renders the full recipe: header, ingredients and numbered
// steps.
func (s Styles) RecipeDetail(r types.Recipe, steps []types.Step, liked bool, likes int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(r.Title))
	b.WriteString("\n")

	badges := []string{s.DifficultyBadge(r.Difficulty)}
	if r.Category != "" {
		badges = append(badges, s.Muted.Render(r.Category))
	}
	if vhs := s.VHSBadge(r); vhs != "" {
		badges = append(badges, vhs)
	}
	badges = append(badges, s.Likes(liked, likes))
	b.WriteString(strings.Join(badges, "  "))
	b.WriteString("\n")

	if r.Author != "" {
		b.WriteString(s.Muted.Render("por @" + r.Author))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render("Imagen: " + ImageURL(r)))
	b.WriteString("\n")
	if r.HasVideo() {
		b.WriteString(s.Muted.Render("Video: " + r.VideoURL))
		b.WriteString("\n")
	}
	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(r.Description)
		b.WriteString("\n")
	}

	facts := []string{}
	if r.PrepTime > 0 {
		facts = append(facts, fmt.Sprintf("Tiempo: %d min", r.PrepTime))
	}
	if r.Calories > 0 {
		facts = append(facts, fmt.Sprintf("Calorías: %d kcal", r.Calories))
	}
	if len(facts) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(facts, "  ·  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Header.Render("Ingredientes"))
	b.WriteString("\n")
	if len(r.Ingredients) == 0 {
		b.WriteString(s.Muted.Render(EmptyIngredients))
		b.WriteString("\n")
	}
	for _, ing := range r.Ingredients {
		line := "• " + ing.Name
		if q := ing.Display(); q != "" {
			line += s.Muted.Render(" · " + q)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Header.Render("Preparación"))
	for _, st := range steps {
		b.WriteString("\n")
		b.WriteString(s.Bold.Render(st.Title))
		b.WriteString("\n")
		b.WriteString(st.Text)
	}
	return b.String()
}

// IngredientList renders the authoring form's pending ingredients with
// their indices.
func (s Styles) IngredientList(ings []types.IngredientInput) string {
	if len(ings) == 0 {
		return s.Muted.Render(EmptyIngredients)
	}
	lines := make([]string, len(ings))
	for i, ing := range ings {
		lines[i] = fmt.Sprintf("%d. %s %s", i+1, ing.Name, s.Muted.Render(ing.Quantity))
	}
	return strings.Join(lines, "\n")
}

func itoa64(n int64) string { return fmt.Sprintf("%d", n) }
