package database

import (
	"strconv"
	"strings"
	"time"
)

// where accumulates AND-ed conditions with their arguments
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return "1 = 1"
	}
	return strings.Join(w.conds, " AND ")
}

// utc normalizes times before they are bound so that text-encoded SQLite
// timestamps compare in order.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func limit(query string, n int) string {
	if n > 0 {
		return query + " LIMIT " + strconv.Itoa(n)
	}
	return query
}
