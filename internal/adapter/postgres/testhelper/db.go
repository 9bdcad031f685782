package testhelper

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/relatosdepapel/bookstore-backend/migrations"
)

const (
	dbUser     = "testuser"
	dbPassword = "testpass"
	adminDB    = "postgres"
)

var (
	once    sync.Once
	hostDSN string
	initErr error

	mu       sync.Mutex
	prepared = map[migrations.Set]string{}
)

// SetupTestDB starts a shared PostgreSQL container (once for the entire test run),
// creates one database per migration set, applies its goose migrations and
// returns a new pgxpool.Pool connected to it. The tables are truncated before
// returning so every test starts from an empty store.
// Skipped under -short.
func SetupTestDB(t *testing.T, set migrations.Set) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: skipping database test in short mode")
	}

	once.Do(func() {
		hostDSN, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	dsn, err := prepare(set)
	if err != nil {
		t.Fatalf("testhelper: failed to prepare %s database: %v", set, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, truncateSQL(set)); err != nil {
		t.Fatalf("testhelper: truncate %s: %v", set, err)
	}

	return pool
}

func truncateSQL(set migrations.Set) string {
	switch set {
	case migrations.Payments:
		return "TRUNCATE payments RESTART IDENTITY"
	default:
		return "TRUNCATE books RESTART IDENTITY"
	}
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
			"POSTGRES_DB":       adminDB,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s", dbUser, dbPassword, host, port.Port()), nil
}

// prepare creates the database for set and migrates it, once per set.
func prepare(set migrations.Set) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if dsn, ok := prepared[set]; ok {
		return dsn, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	admin, err := sql.Open("pgx", dsnFor(adminDB))
	if err != nil {
		return "", fmt.Errorf("sql.Open admin: %w", err)
	}
	defer admin.Close()

	// Database names cannot be parameterised; set is one of the known constants.
	if _, err := admin.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", string(set))); err != nil {
		return "", fmt.Errorf("create database: %w", err)
	}

	dsn := dsnFor(string(set))
	if err := migrate(ctx, dsn, set); err != nil {
		return "", err
	}

	prepared[set] = dsn
	return dsn, nil
}

func migrate(ctx context.Context, dsn string, set migrations.Set) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	fsys, err := migrations.FS(set)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func dsnFor(name string) string {
	return fmt.Sprintf("%s/%s?sslmode=disable", hostDSN, name)
}
