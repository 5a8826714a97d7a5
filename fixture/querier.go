package fixture

import (
	"database/sql"
	"fmt"
	"strings"
)

// Querier is the narrow database surface the manager needs: table enumeration
// and the engine-computed table checksum.
type Querier interface {
	Tables() ([]string, error)
	TableChecksum(table string) (string, error)
}

type SQLQuerier struct {
	db *sql.DB
}

func NewSQLQuerier(db *sql.DB) *SQLQuerier {
	return &SQLQuerier{db: db}
}

func (q *SQLQuerier) Tables() ([]string, error) {
	rows, err := q.db.Query("SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("fail to query tables, error: %v", err)
	}

	defer rows.Close()

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, fmt.Errorf("fail to scan table name, error: %v", err)
		}

		tables = append(tables, table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fail to iterate tables, error: %v", err)
	}

	return tables, nil
}

// TableChecksum returns the raw CHECKSUM TABLE value as text. A NULL checksum
// (for example a missing table) comes back as the empty string.
func (q *SQLQuerier) TableChecksum(table string) (string, error) {
	statement := fmt.Sprintf("CHECKSUM TABLE `%s`", strings.ReplaceAll(table, "`", "``"))

	var name string
	var checksum sql.NullString

	if err := q.db.QueryRow(statement).Scan(&name, &checksum); err != nil {
		return "", fmt.Errorf("fail to checksum table %s, error: %v", table, err)
	}

	if !checksum.Valid {
		return "", nil
	}

	return checksum.String, nil
}
