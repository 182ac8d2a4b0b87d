// Package schema holds typed request and response bodies for the platform's
// endpoints. Request field names follow the spelling the REST API accepts;
// the same values convert to protobuf for the gRPC endpoints.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Int64 is an int64 that decodes from either a JSON number or a string.
// Protobuf JSON renders 64-bit integers as strings while the REST API sends
// numbers.
type Int64 int64

func (i Int64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(i), 10)), nil
}

func (i *Int64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*i = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid int64 %s: %w", b, err)
	}
	*i = Int64(n)
	return nil
}

// Metadata encodes document or section metadata as the JSON string the
// platform stores.
func Metadata(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		// A map of strings always marshals.
		panic(err)
	}
	return string(b)
}

// FormatInterval renders d as an ISO 8601 duration, e.g. "PT1H30M".
func FormatInterval(d time.Duration) string {
	if d <= 0 {
		return "PT0S"
	}
	var b strings.Builder
	b.WriteString("PT")
	if h := d / time.Hour; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		d -= m * time.Minute
	}
	if d > 0 {
		fmt.Fprintf(&b, "%sS", strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
	}
	return b.String()
}
