package services

import (
	"context"
	"strings"

	"travel-backend/internal/models"
	"travel-backend/internal/repositories"
)

type SubscriberService struct {
	Repo *repositories.SubscriberRepository
}

func NewSubscriberService(repo *repositories.SubscriberRepository) *SubscriberService {
	return &SubscriberService{Repo: repo}
}

// Subscribe signs an email up for the newsletter. Re-subscribing a lapsed
// address reactivates it; subscribing twice is harmless.
func (s *SubscriberService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalidField("email", "a valid email is required")
	}

	sub := &models.Subscriber{Email: email}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return invalidField("email", "email is required")
	}
	return s.Repo.Unsubscribe(ctx, email)
}

func (s *SubscriberService) List(ctx context.Context) ([]models.Subscriber, error) {
	return s.Repo.List(ctx)
}
