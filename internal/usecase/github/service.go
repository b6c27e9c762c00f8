package github

import (
	"context"
	"encoding/json"

	"devconnect/internal/infrastructure/github"
)

// Service forwards repository lookups to GitHub unchanged. It exists so
// the handler depends on a usecase like every other route, not on the
// outbound client directly.
type Service struct {
	client github.Client
}

func NewService(client github.Client) *Service {
	return &Service{client: client}
}

func (s *Service) ListRepositories(ctx context.Context, username string) (json.RawMessage, error) {
	return s.client.ListRepositories(ctx, username)
}
