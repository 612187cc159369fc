package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

// ValidateDir checks that every SQL file in the directory follows the
// goose naming convention and carries Up/Down markers.
func ValidateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		if !migrationFileRe.MatchString(entry.Name()) {
			return fmt.Errorf("migration %q does not match <YYYYMMDDHHMMSS>_<name>.sql", entry.Name())
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %q: %w", entry.Name(), err)
		}
		content := string(data)
		if !strings.Contains(content, "+goose Up") {
			return fmt.Errorf("migration %q missing +goose Up marker", entry.Name())
		}
		if !strings.Contains(content, "+goose Down") {
			return fmt.Errorf("migration %q missing +goose Down marker", entry.Name())
		}
	}
	return nil
}
