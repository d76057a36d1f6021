package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chefcommunity/client/internal/types"
)

// Empty and status copy shared by the CLI and the TUI.
const (
	EmptyRecipes      = "AÚN NO HAY RECETAS REGISTRADAS"
	EmptyFavorites    = "AÚN NO HAY FAVORITOS. ¡DALE AMOR A ALGO!"
	EmptyMealPlan     = `Tu horario está vacío. ¡Ve a una receta y haz clic en "Planificar"!`
	EmptyCollection   = "Esta colección está vacía. ¡Añade algunas recetas!"
	EmptyCollections  = "Aún no hay colecciones."
	EmptyShoppingList = "¡Todo listo! Tienes todo lo que necesitas."
	EmptyIngredients  = "Aún no hay ingredientes."
	LoadingProfile    = "CARGANDO PERFIL..."
	ProfileLoadError  = "ERROR CARGANDO DATOS"
	RetryLabel        = "Reintentar"
)

// DifficultyBadge colours the three known difficulties. Unknown values are
// shown as-is in the neutral style.
func (s Styles) DifficultyBadge(d types.Difficulty) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch d {
	case types.DifficultyEasy:
		style = style.Background(Olive).Foreground(Cream)
	case types.DifficultyMedium:
		style = style.Background(Mustard).Foreground(Chocolate)
	case types.DifficultyHard:
		style = style.Background(Rust).Foreground(Cream)
	default:
		style = style.Foreground(Chocolate)
	}
	label := string(d)
	if label == "" {
		label = "?"
	}
	return style.Render(strings.ToUpper(label))
}

// RoleBadge renders the role label in its presentation colours.
func (s Styles) RoleBadge(r types.Role) string {
	p := r.Presentation()
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color(p.Color)).
		Background(lipgloss.Color(p.Background)).
		Render(p.Label)
}

// VHSBadge marks recipes that carry a video. It is empty otherwise.
func (s Styles) VHSBadge(r types.Recipe) string {
	if !r.HasVideo() {
		return ""
	}
	return s.VHS.Render("VHS")
}

// Likes renders a heart and a count, filled when liked.
func (s Styles) Likes(liked bool, count int) string {
	heart := "♡"
	if liked {
		heart = lipgloss.NewStyle().Foreground(Pink).Render("♥")
	}
	return heart + " " + itoa(count)
}

// EmptyState frames a placeholder message.
func (s Styles) EmptyState(msg string) string {
	return s.Empty.Render(msg)
}

// ImageURL returns the recipe's main image or the placeholder.
func ImageURL(r types.Recipe) string {
	if strings.TrimSpace(r.MainImageURL) == "" {
		return PlaceholderImage
	}
	return r.MainImageURL
}
