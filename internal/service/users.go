package service

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
)

type UserService struct {
	store UserStore
	log   *log.Logger
}

func NewUserService(store UserStore, logger *log.Logger) *UserService {
	return &UserService{store: store, log: logger}
}

// Profile returns the requester's own account record.
func (s *UserService) Profile(ctx context.Context, requester *models.User) (models.User, error) {
	if err := RequireUser(requester); err != nil {
		return models.User{}, err
	}
	return s.store.Get(ctx, requester.ID)
}

// UpdateProfile applies a partial edit to the requester's own record.
func (s *UserService) UpdateProfile(ctx context.Context, requester *models.User, in models.UserUpdate) (models.User, error) {
	if err := RequireUser(requester); err != nil {
		return models.User{}, err
	}
	u, err := s.store.Get(ctx, requester.ID)
	if err != nil {
		return models.User{}, err
	}
	if in.Username != nil {
		if strings.TrimSpace(*in.Username) == "" {
			return models.User{}, apperr.Validation("username cannot be empty")
		}
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" || !strings.Contains(email, "@") {
			return models.User{}, apperr.Validation("email is malformed")
		}
		u.Email = email
	}
	if err := s.store.Update(ctx, &u); err != nil {
		return models.User{}, err
	}
	s.log.Info("profile updated", "user", u.ID)
	return u, nil
}
