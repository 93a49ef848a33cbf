package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-hire/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, which usually
// means migrations have not been applied yet.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("table and columns are required")
	}

	rows, err := db.Query(ctx,
		`SELECT want.col
		 FROM unnest($2::text[]) AS want(col)
		 WHERE NOT EXISTS (
		     SELECT 1 FROM information_schema.columns c
		     WHERE c.table_schema = current_schema() AND c.table_name = $1 AND c.column_name = want.col
		 )`,
		table, columns,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		missing = append(missing, col)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %s; run migrations first", table, strings.Join(missing, ", "))
	}
	return nil
}
