package server

import (
	"fmt"

	"github.com/jaswdr/faker"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/auth"
	"github.com/chefcommunity/client/internal/models"
)

// Seed fills the store with generated users, each authoring
// recipesPerUser recipes. Every account uses models.SeedPassword.
func (s *Server) Seed(fake faker.Faker, users, recipesPerUser int) error {
	hash, err := auth.HashPassword(models.SeedPassword)
	if err != nil {
		return err
	}
	for i := 0; i < users; i++ {
		u := models.GenerateUser(fake, i)
		created, err := s.store.CreateUser(u.Username, u.Email, hash, u.Rol, u.Bio, "")
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
		for j := 0; j < recipesPerUser; j++ {
			if _, err := s.store.CreateRecipe(created.ID, models.GenerateRecipe(fake)); err != nil {
				return fmt.Errorf("failed to seed recipe: %w", err)
			}
		}
		s.logger.Debug("seeded user", zap.String("email", u.Email))
	}
	s.logger.Info("seeded stub backend", zap.Int("users", users), zap.Int("recipes", users*recipesPerUser))
	return nil
}
