package format

import "time"

// Date formats t for the "Last updated" line, e.g. "Jan 2, 2006".
// The zero time formats as "".
func Date(t time.Time) string {
    if t.IsZero() {
        return ""
    }
    return t.Format("Jan 2, 2006")
}
