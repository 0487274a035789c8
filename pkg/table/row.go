package table

import (
	"fmt"
	"strconv"
)

// Row maps column names to values. Rows returned by Select use canonical
// keys; rows passed in may use any case.
type Row map[string]any

// Get returns the value of col, matching case-insensitively.
func (r Row) Get(col string) (any, bool) {
	if v, ok := r[Canonical(col)]; ok {
		return v, true
	}
	for k, v := range r {
		if Canonical(k) == Canonical(col) {
			return v, true
		}
	}
	return nil, false
}

// String returns col as a string. NULL and missing columns yield "".
func (r Row) String(col string) string {
	v, _ := r.Get(col)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// Int64 returns col as an int64. Values that are not numeric yield 0.
func (r Row) Int64(col string) int64 {
	v, _ := r.Get(col)
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		n, _ := strconv.ParseInt(string(t), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
