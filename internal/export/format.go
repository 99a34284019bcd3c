package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Format renders a resolved value as its cell text. Date and date-time
// values honor the column's date pattern; every other type renders in its
// natural string form. Nil renders as an empty cell.
func Format(value any, pattern string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if pattern != "" {
			return v.Format(translateDatePattern(pattern))
		}
		return v.Format(time.RFC3339)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uuid.UUID:
		return v.String()
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// datePatternTokens maps pattern letters onto Go reference-time tokens,
// keyed by run length. Template date patterns use the common subset of the
// java.time pattern language (dd/MM/yy and friends).
var datePatternTokens = map[byte]map[int]string{
	'y': {4: "2006", 2: "06"},
	'M': {4: "January", 3: "Jan", 2: "01", 1: "1"},
	'd': {2: "02", 1: "2"},
	'H': {2: "15"},
	'h': {2: "03", 1: "3"},
	'm': {2: "04", 1: "4"},
	's': {2: "05", 1: "5"},
	'a': {1: "PM"},
}

func translateDatePattern(pattern string) string {
	var out strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		runs, known := datePatternTokens[c]
		if !known {
			out.WriteByte(c)
			i++
			continue
		}
		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}
		if token, ok := runs[n]; ok {
			out.WriteString(token)
		} else if token, ok := runs[2]; ok && n > 2 {
			out.WriteString(token)
		} else {
			out.WriteString(pattern[i : i+n])
		}
		i += n
	}
	return out.String()
}
