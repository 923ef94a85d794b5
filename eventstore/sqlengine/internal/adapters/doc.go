// Package adapters lets the sql engine run its statements over pgxpool.Pool, *sql.DB or *sqlx.DB.
//
// The engine renders complete SQL strings with goqu, so an adapter only needs to run a
// string and hand back rows or an affected-row count.
package adapters
