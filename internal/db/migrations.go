package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

type migration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// applyMigrations runs every not yet recorded migration from files in version
// order, each inside its own transaction.
func applyMigrations(database *gorm.DB, files fs.FS, logger *zap.Logger) error {
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return err
	}

	pending, err := loadMigrations(files)
	if err != nil {
		return err
	}

	applied, err := loadAppliedVersions(database)
	if err != nil {
		return err
	}

	for _, item := range pending {
		if _, done := applied[item.Version]; done {
			continue
		}
		if err := applyMigration(database, item); err != nil {
			return err
		}
		logger.Info("applied migration", zap.String("name", item.Name))
	}
	return nil
}

func ensureSchemaMigrationsTable(database *gorm.DB) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func loadMigrations(files fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	loaded := make([]migration, 0, len(entries))
	owners := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		matches := migrationFilePattern.FindStringSubmatch(fileName)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", fileName, err)
		}
		if owner, exists := owners[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, owner, fileName)
		}
		owners[version] = fileName

		rawSQL, err := fs.ReadFile(files, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}

		loaded = append(loaded, migration{
			Version: version,
			Order:   order,
			Name:    fileName,
			SQL:     string(rawSQL),
		})
	}

	sort.Slice(loaded, func(i, j int) bool {
		if loaded[i].Order == loaded[j].Order {
			return loaded[i].Name < loaded[j].Name
		}
		return loaded[i].Order < loaded[j].Order
	})
	return loaded, nil
}

type appliedVersionRow struct {
	Version string `gorm:"column:version"`
}

func loadAppliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	rows := make([]appliedVersionRow, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	versions := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

func applyMigration(database *gorm.DB, item migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(item.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			skip, err := columnAlreadyExists(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", item.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", item.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			item.Version,
			item.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", item.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, rawPart := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(rawPart); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyExists makes ADD COLUMN statements idempotent, since sqlite has
// no ADD COLUMN IF NOT EXISTS.
func columnAlreadyExists(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}

	tableName := normalizeSQLIdentifier(matches[1])
	columnName := normalizeSQLIdentifier(matches[2])

	type pragmaColumn struct {
		Name string `gorm:"column:name"`
	}
	columns := make([]pragmaColumn, 0)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(tableName, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func normalizeSQLIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
