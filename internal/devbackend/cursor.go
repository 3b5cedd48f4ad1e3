package devbackend

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCursor is returned for a cursor this backend did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// topKey sorts above every stored key. A cursor at the top anchor addresses
// the first page.
const topKey = int64(1) << 62

// anchor is a keyset position. A page starting at an anchor holds the rows
// strictly below it in (key, id) order, newest first.
type anchor struct {
	key int64
	id  int64
}

var top = anchor{key: topKey, id: topKey}

func (a anchor) encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d:%d", a.key, a.id)))
}

func decodeCursor(s string) (anchor, error) {
	if s == "" {
		return top, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return anchor{}, ErrInvalidCursor
	}
	k, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return anchor{}, ErrInvalidCursor
	}
	key, err1 := strconv.ParseInt(k, 10, 64)
	rowID, err2 := strconv.ParseInt(id, 10, 64)
	if err1 != nil || err2 != nil {
		return anchor{}, ErrInvalidCursor
	}
	return anchor{key: key, id: rowID}, nil
}

// listQuery is one filtered, keyset-paginated SELECT.
type listQuery struct {
	columns string // selected columns; must not include the trailing key and id
	from    string // FROM clause including joins
	key     string // sort key expression, e.g. "b.created_at"
	id      string // tie-breaker, e.g. "b.id"
	where   []string
	args    []any
}

func (q *listQuery) filter(cond string, args ...any) {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
}

// filterIn adds "col IN (...)" for a non-empty list.
func filterIn[T ~string](q *listQuery, col string, items []T) {
	if len(items) == 0 {
		return
	}
	marks := make([]string, len(items))
	args := make([]any, len(items))
	for i, item := range items {
		marks[i] = "?"
		args[i] = string(item)
	}
	q.filter(col+" IN ("+strings.Join(marks, ", ")+")", args...)
}

func (q *listQuery) sql(extra, order string, limit int) (string, []any) {
	where := append([]string(nil), q.where...)
	where = append(where, extra)
	stmt := "SELECT " + q.columns + ", " + q.key + ", " + q.id + " FROM " + q.from +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY " + q.key + " " + order + ", " + q.id + " " + order +
		" LIMIT " + strconv.Itoa(limit)
	return stmt, append([]any(nil), q.args...)
}

// page runs q from the anchor in cursor and scans at most limit rows. scan
// receives the destinations for the selected columns; the key and id are
// appended by page.
//
// The next cursor anchors at the last row returned when more rows follow.
// The previous cursor anchors so that the previous page holds the limit rows
// just above this one; it is nil on the first page.
func (s *Store) page(ctx context.Context, q listQuery, cursor string, limit int, scan func(dest func(...any) error) error) (next, prev *string, err error) {
	at, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	stmt, args := q.sql("("+q.key+", "+q.id+") < (?, ?)", "DESC", limit+1)
	rows, err := s.db.QueryContext(ctx, stmt, append(args, at.key, at.id)...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var last anchor
	n := 0
	for rows.Next() {
		n++
		if n > limit {
			break
		}
		var cur anchor
		err := scan(func(dest ...any) error {
			return rows.Scan(append(dest, &cur.key, &cur.id)...)
		})
		if err != nil {
			return nil, nil, err
		}
		last = cur
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	rows.Close()

	if n > limit {
		c := last.encode()
		next = &c
	}

	if at != top {
		prevAt, err := s.prevAnchor(ctx, q, at, limit)
		if err != nil {
			return nil, nil, err
		}
		if prevAt != nil {
			c := prevAt.encode()
			prev = &c
		}
	}
	return next, prev, nil
}

// prevAnchor finds where the page before the one at `at` starts. It returns
// nil when no rows lie above `at`.
func (s *Store) prevAnchor(ctx context.Context, q listQuery, at anchor, limit int) (*anchor, error) {
	keyed := q
	keyed.columns = "1"
	stmt, args := keyed.sql("("+q.key+", "+q.id+") >= (?, ?)", "ASC", limit+1)

	rows, err := s.db.QueryContext(ctx, stmt, append(args, at.key, at.id)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var above []anchor
	for rows.Next() {
		var one int
		var a anchor
		if err := rows.Scan(&one, &a.key, &a.id); err != nil {
			return nil, err
		}
		above = append(above, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(above) == 0:
		return nil, nil
	case len(above) <= limit:
		return &top, nil
	default:
		// The previous page starts just below the (limit+1)th row above.
		a := above[limit]
		return &a, nil
	}
}
