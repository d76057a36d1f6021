package models

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chefcommunity/client/internal/types"
)

// Store is the in-memory database of the stub backend. Every method is
// safe for concurrent use and returns API payloads shaped like the real
// backend's.
type Store struct {
	mu          sync.RWMutex
	ids         map[string]int64
	users       map[int64]*User
	ingredients map[string]*Ingredient
	ingByID     map[int64]*Ingredient
	recipes     map[int64]*Recipe
	likes       map[int64]map[int64]time.Time // recipe -> user -> liked at
	follows     map[int64]map[int64]bool      // follower -> followed
	collections map[int64]*Collection
	mealPlans   map[int64]*MealPlan
	now         func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		ids:         make(map[string]int64),
		users:       make(map[int64]*User),
		ingredients: make(map[string]*Ingredient),
		ingByID:     make(map[int64]*Ingredient),
		recipes:     make(map[int64]*Recipe),
		likes:       make(map[int64]map[int64]time.Time),
		follows:     make(map[int64]map[int64]bool),
		collections: make(map[int64]*Collection),
		mealPlans:   make(map[int64]*MealPlan),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) nextID(kind string) int64 {
	s.ids[kind]++
	return s.ids[kind]
}

// --- users ---

// CreateUser registers an account. Usernames and emails are unique.
func (s *Store) CreateUser(username, email, passwordHash string, rol types.Role, bio, avatarURL string) (types.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return types.UserDetail{}, ErrConflict
		}
	}
	if rol == "" {
		rol = types.RoleAprendiz
	}
	u := &User{
		ID:           s.nextID("user"),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Rol:          rol,
		Bio:          bio,
		AvatarURL:    avatarURL,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	return s.userDetail(u), nil
}

// UserByEmail returns the stored account, including its password hash.
func (s *Store) UserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return *u, true
		}
	}
	return User{}, false
}

// UserDetail returns the public profile of a user.
func (s *Store) UserDetail(id int64) (types.UserDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return types.UserDetail{}, ErrNotFound
	}
	return s.userDetail(u), nil
}

func (s *Store) userDetail(u *User) types.UserDetail {
	followers := 0
	for _, followed := range s.follows {
		if followed[u.ID] {
			followers++
		}
	}
	return types.UserDetail{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Rol:            u.Rol,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		CreatedAt:      u.CreatedAt.Format(isoLayout),
		FollowersCount: followers,
		FollowingCount: len(s.follows[u.ID]),
	}
}

// ToggleFollow follows followedID, or unfollows when already following.
func (s *Store) ToggleFollow(followerID, followedID int64) (types.ToggleResult, error) {
	if followerID == followedID {
		return types.ToggleResult{}, ErrSelfFollow
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[followedID]; !ok {
		return types.ToggleResult{}, ErrNotFound
	}
	set := s.follows[followerID]
	if set == nil {
		set = make(map[int64]bool)
		s.follows[followerID] = set
	}
	action := types.ActionFollowed
	if set[followedID] {
		delete(set, followedID)
		action = types.ActionUnfollowed
	} else {
		set[followedID] = true
	}
	return types.ToggleResult{Action: action, UserID: followedID}, nil
}

// Profile builds the aggregate served by GET /api/users/{id}.
func (s *Store) Profile(userID, viewerID int64) (types.ProfileAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return types.ProfileAggregate{}, ErrNotFound
	}

	var own []*Recipe
	for _, r := range s.recipes {
		if r.AuthorID == userID {
			own = append(own, r)
		}
	}
	sortNewest(own)

	agg := types.ProfileAggregate{
		User:        s.userDetail(u),
		IsFollowing: viewerID != 0 && s.follows[viewerID][userID],
		Recipes:     make([]types.Recipe, 0, len(own)),
		Collections: s.collectionsOf(userID),
	}
	for _, r := range own {
		agg.Recipes = append(agg.Recipes, s.recipeDTO(r, false))
	}
	return agg, nil
}

// --- recipes ---

// ListRecipes applies the feed filters and ordering.
func (s *Store) ListRecipes(filter types.RecipeFilter, ingredients []string, viewerID int64) []types.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]bool)
	for _, name := range ingredients {
		if ing, ok := s.ingredients[strings.TrimSpace(name)]; ok {
			wanted[ing.ID] = true
		}
	}

	var list []*Recipe
	for _, r := range s.recipes {
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.AuthorID != 0 && r.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Difficulty != "" && r.Difficulty != filter.Difficulty {
			continue
		}
		if len(ingredients) > 0 && !usesAny(r, wanted) {
			continue
		}
		if filter.Sort == types.SortFollowing && viewerID != 0 && !s.follows[viewerID][r.AuthorID] {
			continue
		}
		list = append(list, r)
	}

	sortNewest(list)
	if filter.Sort == types.SortLikes {
		sort.SliceStable(list, func(i, j int) bool {
			return len(s.likes[list[i].ID]) > len(s.likes[list[j].ID])
		})
	}

	out := make([]types.Recipe, 0, len(list))
	for _, r := range list {
		out = append(out, s.recipeDTO(r, true))
	}
	return out
}

func usesAny(r *Recipe, wanted map[int64]bool) bool {
	for _, ri := range r.Ingredients {
		if wanted[ri.IngredientID] {
			return true
		}
	}
	return false
}

func sortNewest(list []*Recipe) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// GetRecipe returns a recipe with its ingredients and the viewer's like.
func (s *Store) GetRecipe(id, viewerID int64) (types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return types.Recipe{}, ErrNotFound
	}
	dto := s.recipeDTO(r, true)
	dto.Ingredients = s.ingredientsDTO(r)
	_, dto.IsLiked = s.likes[id][viewerID]
	return dto, nil
}

// CreateRecipe stores a new recipe authored by authorID.
func (s *Store) CreateRecipe(authorID int64, in types.RecipeInput) (types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[authorID]; !ok {
		return types.Recipe{}, ErrNotFound
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = types.DefaultDifficulty
	}
	r := &Recipe{
		ID:           s.nextID("recipe"),
		Title:        in.Title,
		Description:  in.Description,
		Instructions: in.Instructions,
		Category:     in.Category,
		PrepTime:     in.PrepTime,
		Calories:     in.Calories,
		Difficulty:   difficulty,
		MainImageURL: in.MainImageURL,
		VideoURL:     in.VideoURL,
		AuthorID:     authorID,
		CreatedAt:    s.now(),
	}
	r.Ingredients = s.linkIngredients(in.Ingredients)
	s.recipes[r.ID] = r

	dto := s.recipeDTO(r, true)
	dto.Ingredients = s.ingredientsDTO(r)
	return dto, nil
}

// UpdateRecipe applies patch when actorID is the author or an admin.
func (s *Store) UpdateRecipe(id, actorID int64, patch RecipePatch) (types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return types.Recipe{}, ErrNotFound
	}
	if !s.canModify(r, actorID) {
		return types.Recipe{}, ErrForbidden
	}

	setString(&r.Title, patch.Title)
	setString(&r.Description, patch.Description)
	setString(&r.Instructions, patch.Instructions)
	setString(&r.Category, patch.Category)
	setString(&r.VideoURL, patch.VideoURL)
	setString(&r.MainImageURL, patch.MainImageURL)
	if patch.Difficulty != nil {
		r.Difficulty = *patch.Difficulty
	}
	if patch.PrepTime != nil {
		r.PrepTime = *patch.PrepTime
	}
	if patch.Calories != nil {
		r.Calories = *patch.Calories
	}
	if patch.Ingredients != nil {
		r.Ingredients = s.linkIngredients(*patch.Ingredients)
	}

	dto := s.recipeDTO(r, true)
	dto.Ingredients = s.ingredientsDTO(r)
	return dto, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DeleteRecipe removes a recipe and everything that references it.
func (s *Store) DeleteRecipe(id, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return ErrNotFound
	}
	if !s.canModify(r, actorID) {
		return ErrForbidden
	}
	delete(s.recipes, id)
	delete(s.likes, id)
	for pid, p := range s.mealPlans {
		if p.RecipeID == id {
			delete(s.mealPlans, pid)
		}
	}
	for _, c := range s.collections {
		c.RecipeIDs = without(c.RecipeIDs, id)
	}
	return nil
}

func (s *Store) canModify(r *Recipe, actorID int64) bool {
	if r.AuthorID == actorID {
		return true
	}
	u, ok := s.users[actorID]
	return ok && u.Rol.IsAdmin()
}

// ToggleLike likes or unlikes a recipe and reports the new total.
func (s *Store) ToggleLike(userID, recipeID int64) (types.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return types.ToggleResult{}, ErrNotFound
	}
	set := s.likes[recipeID]
	if set == nil {
		set = make(map[int64]time.Time)
		s.likes[recipeID] = set
	}
	action := types.ActionLiked
	if _, liked := set[userID]; liked {
		delete(set, userID)
		action = types.ActionUnliked
	} else {
		set[userID] = s.now()
	}
	return types.ToggleResult{Action: action, LikesCount: len(set)}, nil
}

// Favorites lists the recipes userID liked, most recent like first.
func (s *Store) Favorites(userID int64) []types.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type liked struct {
		r  *Recipe
		at time.Time
	}
	var list []liked
	for rid, users := range s.likes {
		if at, ok := users[userID]; ok {
			if r, ok := s.recipes[rid]; ok {
				list = append(list, liked{r, at})
			}
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].at.Equal(list[j].at) {
			return list[i].r.ID > list[j].r.ID
		}
		return list[i].at.After(list[j].at)
	})

	out := make([]types.Recipe, 0, len(list))
	for _, l := range list {
		out = append(out, s.recipeDTO(l.r, true))
	}
	return out
}

// linkIngredients resolves ingredient names against the master table,
// creating entries as needed. A master entry with the generic unit adopts
// the first specific unit it is used with.
func (s *Store) linkIngredients(inputs []types.IngredientInput) []RecipeIngredient {
	var out []RecipeIngredient
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		qty, unit := ParseQuantity(in.Quantity)
		ing, ok := s.ingredients[name]
		if !ok {
			ing = &Ingredient{ID: s.nextID("ingredient"), Name: name, Unit: "ud"}
			s.ingredients[name] = ing
			s.ingByID[ing.ID] = ing
		}
		if ing.Unit == "ud" || ing.Unit == "unit" {
			ing.Unit = unit
		}
		out = append(out, RecipeIngredient{IngredientID: ing.ID, Quantity: qty})
	}
	return out
}

func (s *Store) recipeDTO(r *Recipe, includeAuthor bool) types.Recipe {
	dto := types.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		Category:     r.Category,
		PrepTime:     r.PrepTime,
		Difficulty:   r.Difficulty,
		Calories:     r.Calories,
		AuthorID:     r.AuthorID,
		MainImageURL: r.MainImageURL,
		VideoURL:     r.VideoURL,
		LikesCount:   len(s.likes[r.ID]),
		CreatedAt:    r.CreatedAt.Format(isoLayout),
	}
	if includeAuthor {
		if u, ok := s.users[r.AuthorID]; ok {
			dto.Author = u.Username
			dto.AuthorAvatar = u.AvatarURL
		}
	}
	return dto
}

func (s *Store) ingredientsDTO(r *Recipe) []types.Ingredient {
	out := make([]types.Ingredient, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ing := s.ingByID[ri.IngredientID]
		if ing == nil {
			continue
		}
		out = append(out, types.Ingredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Unit:     ing.Unit,
			Quantity: types.Quantity(FormatQuantity(ri.Quantity)),
		})
	}
	return out
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
