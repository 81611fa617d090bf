package postgres

import (
	"context"
	"testing"
	"time"
)

func TestStore_PingAndEnsureSchema(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Повторный вызов идемпотентен.
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	version, applied, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status: %v", err)
	}
	if version < 1 || applied < 1 {
		t.Fatalf("expected at least one applied migration, got version=%d applied=%d", version, applied)
	}
}

func TestStore_MigrateDownAndUpAgain(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	before, _, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("status before rollback: %v", err)
	}

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down: %v", err)
	}

	after, _, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("status after rollback: %v", err)
	}
	if after >= before {
		t.Fatalf("expected version to decrease, before=%d after=%d", before, after)
	}

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up again: %v", err)
	}
}
