package service

import (
	"context"
	"log/slog"

	"github.com/deepakUNO/Kindle-Server/internal/repository"
	"github.com/google/uuid"
)

// RelationshipSync keeps the author's denormalized book-id list in step
// with the Book.AuthorID column. It runs after the primary mutation has
// committed and is strictly best-effort: failures are logged with enough
// context to reconcile manually and never propagate to the caller. The
// Book record remains the source of truth for ownership.
type RelationshipSync struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewRelationshipSync(userRepo repository.UserRepository, logger *slog.Logger) *RelationshipSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationshipSync{
		userRepo: userRepo,
		logger:   logger,
	}
}

// OnBookCreated appends bookID to the author's book list.
func (s *RelationshipSync) OnBookCreated(ctx context.Context, bookID, authorID uuid.UUID) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		s.logFailure("create", bookID, authorID, err)
		return
	}

	if author.OwnsBook(bookID) {
		return
	}
	author.AuthoredBooks = append(author.AuthoredBooks, bookID)

	if err := s.userRepo.Update(ctx, author); err != nil {
		s.logFailure("create", bookID, authorID, err)
	}
}

// OnBookDeleted removes bookID from the author's book list.
func (s *RelationshipSync) OnBookDeleted(ctx context.Context, bookID, authorID uuid.UUID) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		s.logFailure("delete", bookID, authorID, err)
		return
	}

	kept := author.AuthoredBooks[:0]
	for _, id := range author.AuthoredBooks {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(author.AuthoredBooks) {
		return
	}
	author.AuthoredBooks = kept

	if err := s.userRepo.Update(ctx, author); err != nil {
		s.logFailure("delete", bookID, authorID, err)
	}
}

func (s *RelationshipSync) logFailure(op string, bookID, authorID uuid.UUID, err error) {
	s.logger.Warn("book list sync failed",
		"op", op,
		"book_id", bookID.String(),
		"author_id", authorID.String(),
		"error", err,
	)
}
