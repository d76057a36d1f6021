package models

import (
	"fmt"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/chefcommunity/client/internal/types"
)

// SeedPassword is the password of every generated account.
const SeedPassword = "cinta1234"

var (
	seedDishes = []string{
		"Tortilla de patatas", "Gazpacho", "Paella valenciana", "Huevos rancheros",
		"Crema de calabaza", "Tacos al pastor", "Arroz con leche", "Ensalada César",
		"Lentejas estofadas", "Pancakes de avena", "Ceviche", "Pollo al curry",
	}
	seedIngredients = []struct{ name, qty string }{
		{"Harina", "200 g"}, {"Huevos", "2"}, {"Leche", "250 ml"}, {"Tomate", "3"},
		{"Cebolla", "1"}, {"Ajo", "2"}, {"Aceite de oliva", "2 tbsp"}, {"Sal", "1 tsp"},
		{"Arroz", "1 cup"}, {"Pollo", "1 lb"}, {"Azúcar", "100 g"}, {"Mantequilla", "4 oz"},
	}
	seedSteps = []string{
		"Lava y corta los ingredientes.", "Calienta el aceite en una sartén.",
		"Mezcla todo en un bol grande.", "Cocina a fuego medio durante 10 minutos.",
		"Hornea a 180 grados.", "Deja reposar y sirve.", "Sazona al gusto.",
	}
)

// SeedUser is a generated account.
type SeedUser struct {
	Username string
	Email    string
	Password string
	Rol      types.Role
	Bio      string
}

// GenerateUser produces a synthetic account. The index keeps usernames and
// emails unique within one run.
func GenerateUser(fake faker.Faker, index int) SeedUser {
	first := fake.Person().FirstName()
	last := fake.Person().LastName()
	handle := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, index))
	return SeedUser{
		Username: handle,
		Email:    handle + "@chefcommunity.test",
		Password: SeedPassword,
		Rol:      types.Role(fake.RandomStringElement([]string{"saludable", "aprendiz", "chef"})),
		Bio:      fake.Lorem().Sentence(8),
	}
}

// GenerateRecipe produces a synthetic recipe with a few ingredients and
// newline-separated steps.
func GenerateRecipe(fake faker.Faker) types.RecipeInput {
	steps := make([]string, fake.IntBetween(2, 5))
	for i := range steps {
		steps[i] = fake.RandomStringElement(seedSteps)
	}

	used := make(map[string]bool)
	var ingredients []types.IngredientInput
	for i, n := 0, fake.IntBetween(2, 5); i < n; i++ {
		ing := seedIngredients[fake.IntBetween(0, len(seedIngredients)-1)]
		if used[ing.name] {
			continue
		}
		used[ing.name] = true
		ingredients = append(ingredients, types.IngredientInput{Name: ing.name, Quantity: ing.qty})
	}

	return types.RecipeInput{
		Title:        fake.RandomStringElement(seedDishes),
		Description:  fake.Lorem().Sentence(12),
		Instructions: strings.Join(steps, "\n"),
		Category:     fake.RandomStringElement(types.Categories),
		PrepTime:     fake.IntBetween(5, 120),
		Difficulty:   types.Difficulties[fake.IntBetween(0, len(types.Difficulties)-1)],
		Calories:     fake.IntBetween(80, 900),
		Ingredients:  ingredients,
	}
}
