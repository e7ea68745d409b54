// Package migrate applies ordered, idempotent SQL schema scripts against
// the embedded store and records them in a ledger table. There are no
// down-migrations: the ledger only ever grows.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const ledgerDDL = `
CREATE TABLE IF NOT EXISTS migrations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

var reAddColumn = regexp.MustCompile(`(?is)ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)

// Runner applies the scripts found in an fs.FS (normally the embedded set,
// see Embedded) in lexicographic name order.
type Runner struct {
	db      *gorm.DB
	scripts fs.FS
}

func NewRunner(db *gorm.DB, scripts fs.FS) *Runner {
	return &Runner{db: db, scripts: scripts}
}

// Run applies every not-yet-recorded script exactly once and returns the
// names applied in this run. The first failing statement aborts the run;
// the error names the offending script. Scripts recorded in earlier runs
// are never re-executed or rolled back.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	db := r.db.WithContext(ctx)

	if err := db.Exec(ledgerDDL).Error; err != nil {
		return nil, fmt.Errorf("crear tabla migrations: %w", err)
	}

	executed, err := r.executedSet(db)
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(r.scripts, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		if executed[name] {
			continue
		}
		if err := r.applyScript(db, name); err != nil {
			return applied, fmt.Errorf("migración %s: %w", name, err)
		}
		if err := db.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
			return applied, fmt.Errorf("migración %s: registrar en ledger: %w", name, err)
		}
		log.Info().Str("migracion", name).Msg("migración aplicada")
		applied = append(applied, name)
	}
	return applied, nil
}

func (r *Runner) executedSet(db *gorm.DB) (map[string]bool, error) {
	var names []string
	if err := db.Raw("SELECT name FROM migrations").Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("leer ledger: %w", err)
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// applyScript executes a script statement by statement. ADD COLUMN
// statements are skipped when the column already exists so that re-running
// a script against an older database is safe.
func (r *Runner) applyScript(db *gorm.DB, name string) error {
	raw, err := fs.ReadFile(r.scripts, name)
	if err != nil {
		return err
	}

	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		upper := strings.ToUpper(stmt)

		if strings.HasPrefix(upper, "PRAGMA") {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
			continue
		}

		if strings.Contains(upper, "ADD COLUMN") && !strings.Contains(upper, "IF NOT EXISTS") {
			m := reAddColumn.FindStringSubmatch(stmt)
			if m != nil {
				exists, err := r.columnExists(db, m[1], m[2])
				if err != nil {
					return err
				}
				if exists {
					continue
				}
			}
		}

		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) columnExists(db *gorm.DB, table, column string) (bool, error) {
	var n int
	err := db.Raw(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, column,
	).Scan(&n).Error
	return n > 0, err
}
