package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/deepakUNO/Kindle-Server/internal/api"
	"github.com/deepakUNO/Kindle-Server/internal/config"
	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/deepakUNO/Kindle-Server/internal/repository"
	repoPostgres "github.com/deepakUNO/Kindle-Server/internal/repository/postgres"
	"github.com/deepakUNO/Kindle-Server/internal/service"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB wraps an in-memory SQLite database. The store contract is point
// lookups and single-document writes, which SQLite covers without a
// running Postgres.
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB opens a fresh in-memory database with migrations applied.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.New().String()[:8])
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Book{}); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{DB: db}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"books", "users"} {
		if err := tdb.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a config suitable for tests. Register and login
// lifetimes differ on purpose, matching the defaults.
func TestConfig() *config.Config {
	return &config.Config{
		Port:                  "0",
		Environment:           "test",
		JWTSecret:             "test-secret-key",
		RegisterTokenLifetime: "1h",
		LoginTokenLifetime:    "24h",
	}
}

// TestServer bundles a running HTTP server with its dependencies.
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg, nil)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
