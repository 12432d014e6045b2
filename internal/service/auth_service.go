package service

import (
	"context"
	"errors"
	"time"

	"github.com/deepakUNO/Kindle-Server/internal/config"
	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/deepakUNO/Kindle-Server/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	UserName string
	Email    string
	Password string
	Age      int
	Address  string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult carries the authenticated user together with the freshly
// issued session token. ExpiresIn lets the HTTP layer set an
// expiry-matched cookie.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresIn int
}

// HashPassword applies a salted adaptive hash. Empty passwords are
// rejected before anything is persisted.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword compares plaintext against a bcrypt digest. Malformed
// digests simply verify false.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// Check if email is taken
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}

	user := &domain.User{
		ID:           uuid.New(),
		UserName:     input.UserName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Age:          input.Age,
		Address:      input.Address,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user, config.ParseLifetimeSeconds(s.cfg.RegisterTokenLifetime))
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user, config.ParseLifetimeSeconds(s.cfg.LoginTokenLifetime))
}

// issueSession mints a signed token for the user and persists it as the
// sole valid session, overwriting whatever token was stored before. This
// is the only place session tokens are created or replaced.
func (s *AuthService) issueSession(ctx context.Context, user *domain.User, lifetimeSeconds int) (*AuthResult, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(time.Duration(lifetimeSeconds) * time.Second).Unix(),
		"iat": now.Unix(),
		// Unique token id so two sessions issued within the same second
		// still produce distinct tokens; the stored-token equality check
		// depends on that.
		"jti": uuid.New().String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetSessionToken(ctx, user.ID, &token); err != nil {
		return nil, err
	}
	user.SessionToken = &token

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: lifetimeSeconds,
	}, nil
}

// ValidateToken resolves a raw bearer token into the authenticated user.
// Signature, expiry, subject resolution and the stored-token equality
// check all collapse into ErrUnauthenticated; callers learn nothing about
// which step failed.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	subject, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	// A newer login overwrites the stored token and invalidates this one.
	if user.SessionToken == nil || *user.SessionToken != tokenString {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetSessionToken(ctx, userID, nil)
}
