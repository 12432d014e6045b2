package service

import (
	"log/slog"

	"github.com/deepakUNO/Kindle-Server/internal/config"
	"github.com/deepakUNO/Kindle-Server/internal/repository"
)

type Services struct {
	Auth *AuthService
	Book *BookService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger *slog.Logger) *Services {
	sync := NewRelationshipSync(repos.User, logger)
	return &Services{
		Auth: NewAuthService(repos.User, cfg),
		Book: NewBookService(repos.Book, repos.User, sync),
	}
}
