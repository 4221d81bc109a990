package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestSchemaContainsAllTables(t *testing.T) {
	wantTables := []string{"users", "tokens", "restaurants", "bookings", "comments", "suggestions", "job_queue"}

	var all strings.Builder
	err := fs.WalkDir(Schema(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}
		data, err := fs.ReadFile(Schema(), path)
		if err != nil {
			return err
		}
		all.Write(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk schema: %v", err)
	}

	for _, table := range wantTables {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("schema missing table %s", table)
		}
	}
}
