package types

import "strings"

// Role is the community role attached to a user account.
type Role string

const (
	RoleSaludable Role = "saludable"
	RoleAprendiz  Role = "aprendiz"
	RoleChef      Role = "chef"
	RoleAdmin     Role = "admin"
	RoleOwner     Role = "dueño"
)

// RegistrableRoles are the roles a user may pick when signing up.
var RegistrableRoles = []Role{RoleSaludable, RoleAprendiz, RoleChef}

// RolePresentation is the badge shown next to a user's avatar.
type RolePresentation struct {
	Label       string
	Description string
	Icon        string
	Color       string
	Background  string
}

var rolePresentations = map[Role]RolePresentation{
	RoleSaludable: {
		Label:       "Saludable",
		Description: "Nutricionista apasionado. Enfocado en recetas balanceadas y vida sana.",
		Icon:        "spa",
		Color:       "#065f46",
		Background:  "#d1fae5",
	},
	RoleAprendiz: {
		Label:       "Aprendiz",
		Description: "Explorador culinario. Aprendiendo nuevos sabores y técnicas cada día.",
		Icon:        "school",
		Color:       "#92400e",
		Background:  "#fef3c7",
	},
	RoleChef: {
		Label:       "Chef",
		Description: "Maestro de la cocina. Creando experiencias gastronómicas únicas.",
		Icon:        "restaurant_menu",
		Color:       "#b91c1c",
		Background:  "#fee2e2",
	},
	RoleAdmin: {
		Label:       "Admin",
		Description: "Guardián de la comunidad. Gestionando el sabor y el orden.",
		Icon:        "verified_user",
		Color:       "#3730a3",
		Background:  "#e0e7ff",
	},
	RoleOwner: {
		Label:       "Dueño",
		Description: "El Jefe. Donde todo comienza.",
		Icon:        "local_police",
		Color:       "#86198f",
		Background:  "#fae8ff",
	},
}

// Normalize lowercases the role and maps unknown values to aprendiz.
func (r Role) Normalize() Role {
	n := Role(strings.ToLower(strings.TrimSpace(string(r))))
	if _, ok := rolePresentations[n]; ok {
		return n
	}
	return RoleAprendiz
}

// Presentation returns the badge for the role, falling back to aprendiz.
func (r Role) Presentation() RolePresentation {
	return rolePresentations[r.Normalize()]
}

// IsAdmin reports whether the role grants moderation rights over content.
func (r Role) IsAdmin() bool {
	return Role(strings.ToLower(string(r))) == RoleAdmin
}

// UserSummary is the minimal identity carried by sessions and author links.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Rol       Role   `json:"rol,omitempty"`
}

// UserDetail is the full public profile of a user.
type UserDetail struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Rol            Role   `json:"rol"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	CreatedAt      string `json:"created_at,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
}

// Summary trims the detail down to a UserSummary.
func (u UserDetail) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL, Rol: u.Rol}
}

// DisplayBio returns the bio or the placeholder shown for empty bios.
func (u UserDetail) DisplayBio() string {
	if strings.TrimSpace(u.Bio) == "" {
		return "Aún no hay biografía. Solo buenas vibras."
	}
	return u.Bio
}

// ProfileAggregate is the payload of GET /api/users/{id}.
type ProfileAggregate struct {
	User        UserDetail   `json:"user"`
	IsFollowing bool         `json:"is_following"`
	Recipes     []Recipe     `json:"recipes"`
	Collections []Collection `json:"collections"`
}
