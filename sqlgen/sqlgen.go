// Package sqlgen renders SQL migration scripts from the canonical level
// table. Scripts are generated text in goose migration format; they are
// never executed by this tool.
package sqlgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"levelkit/curve"
)

// Dialect selects the SQL flavor of a generated script.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgresql"
	DialectSQLite   Dialect = "sqlite"
)

// Dialects lists every supported dialect in generation order.
func Dialects() []Dialect {
	return []Dialect{DialectMySQL, DialectPostgres, DialectSQLite}
}

type scriptData struct {
	TableName       string
	Gamma           string
	ExpCap          int
	LevelMin        int
	LevelMax        int
	Span            int
	ThresholdValues string
	CaseLadder      string
}

// Generate renders the migration script for one dialect. Every experience
// value in the output comes from the table: the threshold inserts mirror
// its rows and the SQLite ladder is built row by row; only the stored
// functions carry the solved exponent and the canonical cap.
func Generate(d Dialect, tableName string, tbl *curve.Table) (string, error) {
	if err := validateTableName(tableName); err != nil {
		return "", err
	}

	tmpl, ok := scriptTemplates[d]
	if !ok {
		return "", fmt.Errorf("unknown SQL dialect %q", d)
	}

	c := tbl.Constraints
	data := scriptData{
		TableName:       tableName,
		Gamma:           strconv.FormatFloat(tbl.Gamma, 'f', 6, 64),
		ExpCap:          tbl.ExpCap(),
		LevelMin:        c.LevelMin,
		LevelMax:        c.LevelMax,
		Span:            c.LevelMax - c.LevelMin,
		ThresholdValues: thresholdValues(tbl),
		CaseLadder:      caseLadder(tbl),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s migration: %w", d, err)
	}
	return sb.String(), nil
}

// WriteScript renders one dialect's script into dir and returns its path.
func WriteScript(dir string, d Dialect, tableName string, tbl *curve.Table) (string, error) {
	script, err := Generate(d, tableName, tbl)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("migration_%s.sql", d))
	if err := writeFileAtomic(path, []byte(script)); err != nil {
		return "", fmt.Errorf("write %s migration: %w", d, err)
	}
	return path, nil
}

// WriteAll renders every dialect's script into dir.
func WriteAll(dir, tableName string, tbl *curve.Table) error {
	for _, d := range Dialects() {
		if _, err := WriteScript(dir, d, tableName, tbl); err != nil {
			return err
		}
	}
	return nil
}

// validateTableName accepts only a conservative identifier charset; the
// name is interpolated into SQL text.
func validateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("table name %q contains invalid character %q", name, r)
	}
	return nil
}

// thresholdValues renders the INSERT value list for the threshold reference
// table, one tuple per canonical row.
func thresholdValues(tbl *curve.Table) string {
	var sb strings.Builder
	for i, row := range tbl.Rows {
		sep := ","
		if i == len(tbl.Rows)-1 {
			sep = ";"
		}
		fmt.Fprintf(&sb, "    (%d, %d, %d)%s\n", row.Level, row.CumulativeExp, row.DeltaExp, sep)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// caseLadder renders the SQLite CASE arms, one per level boundary taken
// straight from the table.
func caseLadder(tbl *curve.Table) string {
	var sb strings.Builder
	for i := 0; i < len(tbl.Rows)-1; i++ {
		fmt.Fprintf(&sb, "        WHEN exp < %d THEN %d\n", tbl.Rows[i+1].CumulativeExp, tbl.Rows[i].Level)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// writeFileAtomic writes through a temp file and rename so a partially
// written script is never observable at the final path.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
