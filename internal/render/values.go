package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// blobInlineMax is the longest blob rendered in full; longer blobs show a
// prefix and their size.
const blobInlineMax = 8

// formatValue renders one sample cell from the value types the driver
// returns.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case []byte:
		return formatBlob(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

func formatBlob(b []byte) string {
	if len(b) <= blobInlineMax {
		return byteLiteral(b)
	}
	return fmt.Sprintf("%s.. (%s)", byteLiteral(b[:6]), humanize.IBytes(uint64(len(b))))
}

// byteLiteral renders b as a byte-string literal. Bytes in the 40..126
// range print as characters, everything else as a hex escape.
func byteLiteral(b []byte) string {
	var s strings.Builder
	s.WriteString(`b"`)
	for _, c := range b {
		if c >= 40 && c <= 126 {
			s.WriteByte(c)
		} else {
			fmt.Fprintf(&s, `\x%02X`, c)
		}
	}
	s.WriteByte('"')
	return s.String()
}
