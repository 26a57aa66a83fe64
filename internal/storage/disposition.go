package storage

import (
	"fmt"
	"mime"
	"strings"
)

// ContentDisposition builds an attachment header for name. Non-ASCII names
// get an ASCII filename fallback next to the RFC 2231 encoded filename*.
func ContentDisposition(name string) string {
	encoded := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	ascii := strings.Map(func(r rune) rune {
		if r > 127 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if ascii == name {
		return encoded
	}
	return fmt.Sprintf(`attachment; filename="%s"; %s`, ascii, strings.TrimPrefix(encoded, "attachment; "))
}
