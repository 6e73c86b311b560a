package sqlgen

import "text/template"

// scriptTemplates holds one migration template per dialect, parsed once.
var scriptTemplates = map[Dialect]*template.Template{
	DialectMySQL:    template.Must(template.New("mysql").Parse(mysqlTemplate)),
	DialectPostgres: template.Must(template.New("postgresql").Parse(postgresTemplate)),
	DialectSQLite:   template.Must(template.New("sqlite").Parse(sqliteTemplate)),
}

const mysqlTemplate = `-- Level system migration for table {{.TableName}} (MySQL).
-- Generated from the canonical level table; the values below mirror it exactly.

-- +goose Up
CREATE TABLE IF NOT EXISTS level_thresholds (
    level INT NOT NULL PRIMARY KEY,
    cumulative_exp INT NOT NULL,
    delta_exp INT NOT NULL
);

INSERT INTO level_thresholds (level, cumulative_exp, delta_exp) VALUES
{{.ThresholdValues}}

-- +goose StatementBegin
DROP FUNCTION IF EXISTS calculate_level;
-- +goose StatementEnd

-- +goose StatementBegin
CREATE FUNCTION calculate_level(exp INT) RETURNS INT
READS SQL DATA
DETERMINISTIC
BEGIN
    DECLARE level_result INT;
    DECLARE base_val DECIMAL(20,10);

    IF exp IS NULL OR exp < 0 THEN
        SET exp = 0;
    END IF;
    IF exp = 0 THEN
        RETURN {{.LevelMin}};
    END IF;

    SET base_val = LN(exp + 1) / LN({{.ExpCap}} + 1);
    SET level_result = FLOOR({{.LevelMin}} + {{.Span}} * POWER(base_val, {{.Gamma}}) + 0.000000001);

    IF level_result > {{.LevelMax}} THEN
        SET level_result = {{.LevelMax}};
    END IF;
    IF level_result < {{.LevelMin}} THEN
        SET level_result = {{.LevelMin}};
    END IF;
    RETURN level_result;
END
-- +goose StatementEnd

-- Back up current levels before rewriting them.
CREATE TABLE IF NOT EXISTS {{.TableName}}_level_backup AS
SELECT uid, level AS old_level, exp, NOW() AS backup_time
FROM {{.TableName}};

UPDATE {{.TableName}}
SET level = calculate_level(exp)
WHERE exp IS NOT NULL;

-- Verification: overall level statistics after migration.
SELECT
    COUNT(*) AS total_users,
    MIN(level) AS min_level,
    MAX(level) AS max_level,
    ROUND(AVG(level), 2) AS avg_level
FROM {{.TableName}};

-- Verification: per-level distribution.
SELECT
    level,
    COUNT(*) AS user_count,
    ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM {{.TableName}}), 2) AS percentage
FROM {{.TableName}}
GROUP BY level
ORDER BY level;

-- +goose Down
DROP FUNCTION IF EXISTS calculate_level;
DROP TABLE IF EXISTS {{.TableName}}_level_backup;
DROP TABLE IF EXISTS level_thresholds;
`

const postgresTemplate = `-- Level system migration for table {{.TableName}} (PostgreSQL).
-- Generated from the canonical level table; the values below mirror it exactly.

-- +goose Up
CREATE TABLE IF NOT EXISTS level_thresholds (
    level INTEGER NOT NULL PRIMARY KEY,
    cumulative_exp INTEGER NOT NULL,
    delta_exp INTEGER NOT NULL
);

INSERT INTO level_thresholds (level, cumulative_exp, delta_exp) VALUES
{{.ThresholdValues}}

-- +goose StatementBegin
CREATE OR REPLACE FUNCTION calculate_level(exp INTEGER) RETURNS INTEGER AS $$
DECLARE
    level_result INTEGER;
    base_val NUMERIC;
BEGIN
    IF exp IS NULL OR exp < 0 THEN
        exp := 0;
    END IF;
    IF exp = 0 THEN
        RETURN {{.LevelMin}};
    END IF;

    base_val := LN(exp + 1) / LN({{.ExpCap}} + 1);
    level_result := FLOOR({{.LevelMin}} + {{.Span}} * POWER(base_val, {{.Gamma}}) + 0.000000001);

    IF level_result > {{.LevelMax}} THEN
        level_result := {{.LevelMax}};
    END IF;
    IF level_result < {{.LevelMin}} THEN
        level_result := {{.LevelMin}};
    END IF;
    RETURN level_result;
END;
$$ LANGUAGE plpgsql IMMUTABLE;
-- +goose StatementEnd

-- Back up current levels before rewriting them.
CREATE TABLE IF NOT EXISTS {{.TableName}}_level_backup AS
SELECT uid, level AS old_level, exp, NOW() AS backup_time
FROM {{.TableName}};

UPDATE {{.TableName}}
SET level = calculate_level(exp)
WHERE exp IS NOT NULL;

-- Verification: overall level statistics after migration.
SELECT
    COUNT(*) AS total_users,
    MIN(level) AS min_level,
    MAX(level) AS max_level,
    ROUND(AVG(level), 2) AS avg_level
FROM {{.TableName}};

-- Verification: per-level distribution.
SELECT
    level,
    COUNT(*) AS user_count,
    ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM {{.TableName}}), 2) AS percentage
FROM {{.TableName}}
GROUP BY level
ORDER BY level;

-- +goose Down
DROP FUNCTION IF EXISTS calculate_level(INTEGER);
DROP TABLE IF EXISTS {{.TableName}}_level_backup;
DROP TABLE IF EXISTS level_thresholds;
`

const sqliteTemplate = `-- Level system migration for table {{.TableName}} (SQLite).
-- Generated from the canonical level table; the values below mirror it exactly.

-- +goose Up
CREATE TABLE IF NOT EXISTS level_thresholds (
    level INTEGER NOT NULL PRIMARY KEY,
    cumulative_exp INTEGER NOT NULL,
    delta_exp INTEGER NOT NULL
);

INSERT INTO level_thresholds (level, cumulative_exp, delta_exp) VALUES
{{.ThresholdValues}}

-- Back up current levels before rewriting them.
CREATE TABLE IF NOT EXISTS {{.TableName}}_level_backup AS
SELECT uid, level AS old_level, exp, datetime('now') AS backup_time
FROM {{.TableName}};

-- SQLite has no stored functions; the ladder below is generated row by row
-- from the canonical table.
UPDATE {{.TableName}}
SET level =
    CASE
{{.CaseLadder}}
        ELSE {{.LevelMax}}
    END
WHERE exp IS NOT NULL;

-- Verification: overall level statistics after migration.
SELECT
    COUNT(*) AS total_users,
    MIN(level) AS min_level,
    MAX(level) AS max_level,
    ROUND(AVG(level), 2) AS avg_level
FROM {{.TableName}};

-- Verification: per-level distribution.
SELECT
    level,
    COUNT(*) AS user_count,
    ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM {{.TableName}}), 2) AS percentage
FROM {{.TableName}}
GROUP BY level
ORDER BY level;

-- +goose Down
DROP TABLE IF EXISTS {{.TableName}}_level_backup;
DROP TABLE IF EXISTS level_thresholds;
`
