// service_test.go provides shared test infrastructure for service
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package service

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// testDB opens the test database and runs migrations, skipping the test
// when PostgreSQL is not reachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testServices builds both services over a fresh store set.
func testServices(db *sql.DB) (*Taxonomy, *Content) {
	categories := store.NewCategoryStore(db)
	posts := store.NewPostStore(db)
	return NewTaxonomy(categories, posts), NewContent(posts, categories)
}

// testUser creates a throwaway user and registers its cleanup.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	email := "svc-test-" + uuid.NewString()[:8] + "@inkwell.test"
	u, err := store.NewUserStore(db).Create("Service Tester", email, "secret", "user")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })
	return u
}

// uniqueName returns a name with a random suffix so tests can share one
// database without colliding on the unique indexes.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// cleanupCategory removes a category row by id after the test.
func cleanupCategory(t *testing.T, db *sql.DB, id uuid.UUID) {
	t.Helper()
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", id) })
}

// cleanupPost removes a post row by id after the test.
func cleanupPost(t *testing.T, db *sql.DB, id uuid.UUID) {
	t.Helper()
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", id) })
}
