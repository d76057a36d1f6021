package render

import (
	"fmt"
	"strings"

	"github.com/chefcommunity/client/internal/types"
)

// ProfileHeader renders the identity block of a profile page.
func (s Styles) ProfileHeader(u types.UserDetail, isFollowing, isOwner bool) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("@" + u.Username))
	b.WriteString("  ")
	b.WriteString(s.RoleBadge(u.Rol))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(u.Rol.Presentation().Description))
	b.WriteString("\n\n")
	b.WriteString(u.DisplayBio())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s seguidores  %s siguiendo",
		s.Bold.Render(itoa(u.FollowersCount)), s.Bold.Render(itoa(u.FollowingCount))))
	if !isOwner {
		label := "[ Seguir ]"
		if isFollowing {
			label = "[ Siguiendo ]"
		}
		b.WriteString("  ")
		b.WriteString(s.Selected.Render(label))
	}
	return b.String()
}

// Tabs renders a tab bar with the active label highlighted.
func (s Styles) Tabs(labels []string, active int) string {
	out := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			out[i] = s.ActiveTab.Render(l)
		} else {
			out[i] = s.Tab.Render(l)
		}
	}
	return strings.Join(out, " ")
}

// ProfileLoading and ProfileError are the full-page states of a profile.
func (s Styles) ProfileLoading() string {
	return s.EmptyState(LoadingProfile)
}

func (s Styles) ProfileError(msg string) string {
	return s.Error.Render(ProfileLoadError) + "\n" +
		s.Muted.Render("Error del servidor: "+msg) + "\n" +
		s.Selected.Render("[ "+RetryLabel+" ]")
}

// MealPlan renders entries grouped by day and slot. cursor indexes the
// flattened entries, -1 for none.
func (s Styles) MealPlan(groups []types.DayGroup, cursor int) string {
	if len(groups) == 0 {
		return s.EmptyState(EmptyMealPlan)
	}
	var b strings.Builder
	i := 0
	for g, day := range groups {
		if g > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Header.Render(day.Date))
		for _, e := range day.Entries {
			title := fmt.Sprintf("receta #%d", e.RecipeID)
			if e.Recipe != nil && e.Recipe.Title != "" {
				title = e.Recipe.Title
			}
			line := fmt.Sprintf("%-8s %s", string(e.MealTime), title)
			b.WriteString("\n")
			if i == cursor {
				b.WriteString(s.Selected.Render("▸ " + line))
			} else {
				b.WriteString("  " + line)
			}
			i++
		}
	}
	return b.String()
}

// ShoppingList renders the aggregated list.
func (s Styles) ShoppingList(items []types.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Lista de Compra"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Basada en tu plan semanal"))
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString(s.Notice.Render(EmptyShoppingList))
		return b.String()
	}
	t := NewTable("", "INGREDIENTE", "CANTIDAD")
	for _, it := range items {
		t.AddRow("☐ "+it.Name, it.Quantity)
	}
	b.WriteString(t.View(s))
	return b.String()
}

// Collections lists collection names with their recipe counts.
func (s Styles) Collections(cols []types.Collection, cursor int) string {
	if len(cols) == 0 {
		return s.EmptyState(EmptyCollections)
	}
	lines := make([]string, len(cols))
	for i, c := range cols {
		line := fmt.Sprintf("%s (%d)", c.Name, c.RecipeCount)
		if c.Description != "" {
			line += s.Muted.Render("  " + c.Description)
		}
		if i == cursor {
			lines[i] = s.Selected.Render("▸ ") + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// CollectionContents renders an opened collection.
func (s Styles) CollectionContents(c types.Collection, width, cursor int) string {
	header := s.Title.Render(c.Name)
	if c.Description != "" {
		header += "\n" + s.Muted.Render(c.Description)
	}
	return header + "\n\n" + s.RecipeList(c.Recipes, width, cursor, EmptyCollection, nil)
}

// MealPlanTable lists planned meals with their entry ids for the CLI.
func (s Styles) MealPlanTable(groups []types.DayGroup) string {
	if len(groups) == 0 {
		return s.EmptyState(EmptyMealPlan)
	}
	t := NewTable("Plan Semanal", "FECHA", "COMIDA", "RECETA", "ENTRADA")
	for _, day := range groups {
		for _, e := range day.Entries {
			title := fmt.Sprintf("receta #%d", e.RecipeID)
			if e.Recipe != nil && e.Recipe.Title != "" {
				title = e.Recipe.Title
			}
			t.AddRow(day.Date, string(e.MealTime), title, itoa64(e.ID))
		}
	}
	return t.View(s)
}

// CollectionTable lists collections with their ids for the CLI.
func (s Styles) CollectionTable(cols []types.Collection) string {
	if len(cols) == 0 {
		return s.EmptyState(EmptyCollections)
	}
	t := NewTable("Colecciones", "ID", "NOMBRE", "RECETAS", "DESCRIPCIÓN")
	for _, c := range cols {
		t.AddRow(itoa64(c.ID), c.Name, itoa(c.RecipeCount), c.Description)
	}
	return t.View(s)
}
