package service

import (
	"context"
	"errors"

	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/deepakUNO/Kindle-Server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookService struct {
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	sync     *RelationshipSync
}

func NewBookService(bookRepo repository.BookRepository, userRepo repository.UserRepository, sync *RelationshipSync) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		userRepo: userRepo,
		sync:     sync,
	}
}

type CreateBookInput struct {
	Title       string
	AuthorID    uuid.UUID
	Description string
	Price       float64
	Category    domain.Category
}

type UpdateBookInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *domain.Category
}

func (s *BookService) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if input.Category != "" && !domain.ValidCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}

	// The author reference must resolve at creation time.
	if _, err := s.userRepo.GetByID(ctx, input.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	book := &domain.Book{
		ID:          uuid.New(),
		Title:       input.Title,
		AuthorID:    input.AuthorID,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
	}
	applyBookDefaults(book)

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	// Best-effort; the book is already durable and reports success
	// regardless of whether the author's list could be updated.
	s.sync.OnBookCreated(ctx, book.ID, book.AuthorID)

	return book, nil
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.GetAll(ctx)
}

// SearchBooks pages through books matching searchTerm (case-insensitive,
// over title, description and category). Page and limit fall back to 1
// and 10 when out of range.
func (s *BookService) SearchBooks(ctx context.Context, searchTerm string, page, limit int) ([]*domain.Book, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.bookRepo.Search(ctx, searchTerm, limit, (page-1)*limit)
}

// UpdateBook applies the provided fields. The author reference is
// immutable after creation and is not part of the input.
func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, domain.ErrInvalidCategory
		}
		book.Category = *input.Category
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// RateBook folds a 1..5 rating into the book's aggregates.
func (s *BookService) RateBook(ctx context.Context, id uuid.UUID, rating int) (*domain.Book, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	total := book.RatingAverage*float64(book.RatingCount) + float64(rating)
	book.RatingCount++
	book.RatingAverage = total / float64(book.RatingCount)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a book after checking the caller owns it. The book
// is read first; authorization runs strictly before the delete.
func (s *BookService) DeleteBook(ctx context.Context, id, callerID uuid.UUID) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeDelete(book, callerID); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	// Best-effort removal from the author's book list.
	s.sync.OnBookDeleted(ctx, book.ID, book.AuthorID)

	return book, nil
}

// authorizeDelete is the single boundary where the book's author
// reference is compared against the caller's identity.
func authorizeDelete(book *domain.Book, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	if book.AuthorID != callerID {
		return domain.ErrForbidden
	}
	return nil
}

func applyBookDefaults(book *domain.Book) {
	if book.Description == "" {
		book.Description = "No description available"
	}
	if book.Price == 0 {
		book.Price = 100
	}
	if book.Category == "" {
		book.Category = domain.CategoryClassics
	}
}
