// Package render draws ChefCommunity data for the terminal in the app's
// retro palette. It is shared by chefctl's table output and the TUI.
package render

import "github.com/charmbracelet/lipgloss"

// Retro palette.
var (
	Primary   = lipgloss.Color("#ec6d13")
	Cream     = lipgloss.Color("#F5E6D3")
	Chocolate = lipgloss.Color("#5C4033")
	Olive     = lipgloss.Color("#6B7B3A")
	Mustard   = lipgloss.Color("#D4A017")
	Rust      = lipgloss.Color("#B7410E")
	VHSBlack  = lipgloss.Color("#181411")
	Danger    = lipgloss.Color("#DC2626")
	Pink      = lipgloss.Color("#DB2777")
)

// PlaceholderImage is shown for recipes without a main image.
const PlaceholderImage = "https://placehold.co/400x300/F5E6D3/5C4033?text=Sin+Imagen"

// Styles groups the lipgloss styles used across views.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Body      lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	Empty     lipgloss.Style
	VHS       lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

// DefaultStyles returns the retro theme.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Chocolate).Underline(true),
		Body:     lipgloss.NewStyle(),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(Chocolate).Faint(true),
		Error:    lipgloss.NewStyle().Foreground(Danger).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(Olive).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(Primary).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Chocolate).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Chocolate).
			Foreground(Chocolate).
			Padding(1, 2).
			Align(lipgloss.Center),
		VHS:       lipgloss.NewStyle().Background(VHSBlack).Foreground(Cream).Bold(true).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(Chocolate).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(Cream).Background(Primary).Bold(true).Padding(0, 1),
	}
}
