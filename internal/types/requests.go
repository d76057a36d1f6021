package types

import "io"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      Role   `json:"rol,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token"`
	User    UserDetail `json:"user"`
}

// Session returns the identity/token pair to persist after authenticating.
func (r AuthResponse) Session() Session {
	return Session{User: r.User.Summary(), Token: r.Token}
}

// IngredientInput is an ingredient as written by the authoring form.
type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// RecipeInput carries the scalar fields of a recipe create or update.
// Media URLs are only sent on update, carried over from the original.
type RecipeInput struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Instructions string            `json:"instructions"`
	Category     string            `json:"category"`
	PrepTime     int               `json:"prep_time"`
	Difficulty   Difficulty        `json:"difficulty"`
	Calories     int               `json:"calories"`
	Ingredients  []IngredientInput `json:"ingredients"`
	MainImageURL string            `json:"main_image_url,omitempty"`
	VideoURL     string            `json:"video_url,omitempty"`
}

// Attachment is a media file uploaded with a new recipe.
type Attachment struct {
	Filename string
	Body     io.Reader
}

// RecipeFilter holds the feed query parameters.
type RecipeFilter struct {
	Category   string
	Search     string
	AuthorID   int64
	Difficulty Difficulty
	Sort       string
}

// Feed sort orders.
const (
	SortNewest    = "newest"
	SortLikes     = "likes"
	SortFollowing = "following"
)
