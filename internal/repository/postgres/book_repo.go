package postgres

import (
	"context"
	"strings"

	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *bookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Book{}, "id = ?", id).Error
}

func (r *bookRepository) GetAll(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Search(ctx context.Context, searchTerm string, limit, offset int) ([]*domain.Book, error) {
	query := r.db.WithContext(ctx)

	if term := strings.TrimSpace(searchTerm); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var books []*domain.Book
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}
