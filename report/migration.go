package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"levelkit/curve"
)

// UserExp pairs a user id with accumulated experience.
type UserExp struct {
	UID int64
	Exp int
}

// LoadUserExp reads a user experience export with a uid,exp header.
func LoadUserExp(path string) ([]UserExp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open user export: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read user export %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("user export %s has no data rows", path)
	}

	users := make([]UserExp, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("user export %s: row %d has %d columns, want 2", path, i+2, len(rec))
		}
		uid, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("user export %s: row %d: bad uid: %w", path, i+2, err)
		}
		exp, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("user export %s: row %d: bad exp: %w", path, i+2, err)
		}
		users = append(users, UserExp{UID: uid, Exp: exp})
	}
	return users, nil
}

// WriteUserMigrationCSV writes uid,exp,old_level,new_level rows for a user
// set. The new level is resolved through the canonical table; the old level
// reproduces the legacy flat ladder of one level per 1000 experience.
func WriteUserMigrationCSV(path string, users []UserExp, tbl *curve.Table) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"uid", "exp", "old_level", "new_level"}); err != nil {
		return err
	}
	for _, u := range users {
		rec := []string{
			strconv.FormatInt(u.UID, 10),
			strconv.Itoa(u.Exp),
			strconv.Itoa(legacyLevel(u.Exp, tbl.Constraints)),
			strconv.Itoa(tbl.LevelForExp(u.Exp)),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(sb.String()))
}

// legacyLevel is the pre-migration approximation: one level per 1000
// experience, clamped to the level range.
func legacyLevel(exp int, c curve.Constraints) int {
	lvl := exp/1000 + 1
	if lvl < c.LevelMin {
		return c.LevelMin
	}
	if lvl > c.LevelMax {
		return c.LevelMax
	}
	return lvl
}
