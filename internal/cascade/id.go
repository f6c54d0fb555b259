package cascade

import (
	"math"
	"strconv"
	"strings"
)

// ParseID normalizes the loosely typed ids coming out of form inputs.
// String and numeric forms of the same id are equivalent. Zero, negative,
// NaN, empty, and unparsable values all mean "absent".
func ParseID(v any) (int64, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case int:
		return positive(int64(value))
	case int32:
		return positive(int64(value))
	case int64:
		return positive(value)
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
			return 0, false
		}
		return positive(int64(value))
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, false
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return positive(id)
	default:
		return 0, false
	}
}

func positive(id int64) (int64, bool) {
	if id <= 0 {
		return 0, false
	}
	return id, true
}
