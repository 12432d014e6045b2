package repository

import (
	"context"

	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// SetSessionToken overwrites the user's stored session token in a
	// single write. A nil token clears the session.
	SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]*domain.Book, error)
	Search(ctx context.Context, searchTerm string, limit, offset int) ([]*domain.Book, error)
}

type Repositories struct {
	User UserRepository
	Book BookRepository
}
