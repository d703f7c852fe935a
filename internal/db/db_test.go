package db

import "testing"

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbmigrate?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"users", "problems", "plans"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var version int
	if err := d.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		t.Fatalf("schema_migrations: %v", err)
	}
	if version < 1 {
		t.Fatalf("expected at least migration 1, got %d", version)
	}
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='plans'`).Scan(&n); err != nil {
		t.Fatalf("count plans: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected plans table dropped after rollback")
	}

	// Rolling back an empty migration history is a no-op.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("second rollback: %v", err)
	}
}
