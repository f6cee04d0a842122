package repository

import (
	"context"
	"fmt"
)

// Directors and genres share the same (id, name) layout; these helpers take
// the table name from a fixed set of constants, never from user input.

func listNamed[T any](ctx context.Context, db querier, table string, build func(id int64, name string) T) ([]T, error) {
	rows, err := db.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		items = append(items, build(id, name))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func getNamed(ctx context.Context, db querier, table string, id int64) (string, error) {
	var name string
	err := db.QueryRow(ctx, fmt.Sprintf(`SELECT name FROM %s WHERE id = $1`, table), id).Scan(&name)
	return name, translateError(err)
}

func createNamed(ctx context.Context, db querier, table, name string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, table), name).Scan(&id)
	return id, translateError(err)
}

func replaceNamed(ctx context.Context, db querier, table string, id int64, name string) error {
	return execAffecting(db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, table), id, name))
}

func deleteNamed(ctx context.Context, db querier, table string, id int64) error {
	return execAffecting(db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id))
}
