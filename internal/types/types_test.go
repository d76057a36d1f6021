package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSteps(t *testing.T) {
	steps := DeriveSteps("Mix\n\n  \nBake")

	require.Len(t, steps, 2)
	assert.Equal(t, Step{Number: 1, Title: "Paso 1", Text: "Mix"}, steps[0])
	assert.Equal(t, Step{Number: 2, Title: "Paso 2", Text: "Bake"}, steps[1])
}

func TestDeriveSteps_CRLFAndEmpty(t *testing.T) {
	steps := DeriveSteps("Hervir agua\r\nAñadir pasta\r\n")
	require.Len(t, steps, 2)
	assert.Equal(t, "Añadir pasta", steps[1].Text)

	assert.Empty(t, DeriveSteps(""))
	assert.Empty(t, DeriveSteps("\n \n\t\n"))
}

func TestQuantity_Unmarshal(t *testing.T) {
	var ings []Ingredient
	err := json.Unmarshal([]byte(`[
		{"ingredient_id": 1, "name": "Harina", "unit": "g", "quantity": 200.0},
		{"name": "Huevos", "quantity": "2"},
		{"name": "Sal", "unit": "ud", "quantity": null},
		{"name": "Leche", "unit": "ml", "quantity": 250.5}
	]`), &ings)
	require.NoError(t, err)

	assert.Equal(t, Quantity("200"), ings[0].Quantity)
	assert.Equal(t, "200 g", ings[0].Display())
	assert.Equal(t, "2", ings[1].Display())
	assert.Equal(t, "", ings[2].Display())
	assert.Equal(t, "250.5 ml", ings[3].Display())
}

func TestQuantity_UnmarshalInvalid(t *testing.T) {
	var q Quantity
	assert.Error(t, json.Unmarshal([]byte(`true`), &q))
}

func TestRolePresentation(t *testing.T) {
	assert.Equal(t, "Chef", Role("chef").Presentation().Label)
	assert.Equal(t, "Admin", Role("ADMIN").Presentation().Label)
	assert.Equal(t, "Dueño", RoleOwner.Presentation().Label)
	assert.Equal(t, "Aprendiz", Role("astronauta").Presentation().Label)
	assert.Equal(t, "Aprendiz", Role("").Presentation().Label)
	assert.Equal(t, "school", Role("").Presentation().Icon)
}

func TestRecipe_CanBeEditedBy(t *testing.T) {
	recipe := Recipe{ID: 1, AuthorID: 7}

	assert.True(t, recipe.CanBeEditedBy(&UserSummary{ID: 7, Rol: RoleChef}))
	assert.True(t, recipe.CanBeEditedBy(&UserSummary{ID: 2, Rol: RoleAdmin}))
	assert.False(t, recipe.CanBeEditedBy(&UserSummary{ID: 2, Rol: RoleChef}))
	assert.False(t, recipe.CanBeEditedBy(&UserSummary{ID: 2, Rol: RoleOwner}))
	assert.False(t, recipe.CanBeEditedBy(nil))
}

func TestGroupMealPlan(t *testing.T) {
	entries := []MealPlanEntry{
		{ID: 1, PlanDate: "2026-10-21", MealTime: MealDinner},
		{ID: 2, PlanDate: "2026-10-20", MealTime: MealLunch},
		{ID: 3, PlanDate: "2026-10-21", MealTime: MealBreakfast},
		{ID: 4, PlanDate: "pronto", MealTime: MealLunch},
	}

	groups := GroupMealPlan(entries)

	require.Len(t, groups, 3)
	assert.Equal(t, "2026-10-20", groups[0].Date)
	assert.Equal(t, "2026-10-21", groups[1].Date)
	require.Len(t, groups[1].Entries, 2)
	assert.Equal(t, int64(1), groups[1].Entries[0].ID)
	assert.Equal(t, int64(3), groups[1].Entries[1].ID)
	assert.Equal(t, "pronto", groups[2].Date)
}

func TestSession_Valid(t *testing.T) {
	assert.True(t, Session{User: UserSummary{ID: 1}, Token: "t"}.Valid())
	assert.False(t, Session{User: UserSummary{ID: 1}}.Valid())
	assert.False(t, Session{Token: "t"}.Valid())
}

func TestTokenClaims_UserID(t *testing.T) {
	c := &TokenClaims{}
	c.Subject = "42"
	id, err := c.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c.Subject = "abc"
	_, err = c.UserID()
	assert.Error(t, err)
}
