package postgres

import (
	"context"
	"log"
	"os"
	"testing"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/database/storetest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:14-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %s", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("failed to connect to test database: %s", err)
	}

	if err := Migrate(ctx, testPool); err != nil {
		log.Fatalf("failed to apply schema: %s", err)
	}

	code := m.Run()

	testPool.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %s", err)
	}
	os.Exit(code)
}

// Każdy test dostaje pustą tabelę; pula jest współdzielona, więc nie zamykamy jej tutaj
func freshStore(t *testing.T) database.Store {
	_, err := testPool.Exec(context.Background(), `TRUNCATE nodes RESTART IDENTITY`)
	require.NoError(t, err)
	return NewStore(testPool)
}

func TestConformance(t *testing.T) {
	storetest.RunConformanceSuite(t, freshStore)
}

func TestMigrateIsIdempotent(t *testing.T) {
	require.NoError(t, Migrate(context.Background(), testPool))
}
