package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// booksQuery reads the books table in insertion order.
const booksQuery = `
SELECT COALESCE(id, ''), title, COALESCE(author, ''), COALESCE(genre, ''),
       COALESCE(narrator, ''), COALESCE(duration, 0), COALESCE(chapters, 0),
       COALESCE(year, 0), COALESCE(description, ''), COALESCE(url, '')
FROM books
ORDER BY rowid`

// readSQLite loads records from a SQLite catalog.
func readSQLite(ctx context.Context, path string) ([]Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, booksQuery)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Author, &r.Genre, &r.Narrator,
			&r.Duration, &r.Chapters, &r.Year, &r.Description, &r.URL); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return records, nil
}
