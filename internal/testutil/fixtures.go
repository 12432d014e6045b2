package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	userName string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		userName: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUserName sets the user name
func (b *UserBuilder) WithUserName(name string) *UserBuilder {
	b.userName = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		UserName:     b.userName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		UserName string `json:"userName"`
		Email    string `json:"email"`
	} `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// BuildAndAuthenticate creates a user via the API and returns the user
// and session token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"userName": b.userName,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/user/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		UserName: authResp.User.UserName,
		Email:    authResp.User.Email,
	}

	return user, authResp.Token
}

// BookBuilder creates test books with a builder pattern
type BookBuilder struct {
	title    string
	authorID uuid.UUID
	category domain.Category
	price    float64
}

// NewBookBuilder creates a new BookBuilder with default values
func NewBookBuilder(authorID uuid.UUID) *BookBuilder {
	return &BookBuilder{
		title:    fmt.Sprintf("Test Book %s", uuid.New().String()[:8]),
		authorID: authorID,
		category: domain.CategoryClassics,
		price:    100,
	}
}

// WithTitle sets the title
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.title = title
	return b
}

// WithCategory sets the category
func (b *BookBuilder) WithCategory(category domain.Category) *BookBuilder {
	b.category = category
	return b
}

// WithPrice sets the price
func (b *BookBuilder) WithPrice(price float64) *BookBuilder {
	b.price = price
	return b
}

// Build creates the book in the database
func (b *BookBuilder) Build(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()

	book := &domain.Book{
		ID:          uuid.New(),
		Title:       b.title,
		AuthorID:    b.authorID,
		Description: "No description available",
		Price:       b.price,
		Category:    b.category,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return book
}
