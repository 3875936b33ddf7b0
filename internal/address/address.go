// Package address provides syntactic validation of email addresses. No DNS
// or mailbox-existence check is performed.
package address

import "regexp"

// pattern accepts a conservative local part (letters, digits, _.+-) and a
// domain label followed by at least one dot and a top level domain.
var pattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9].+$`)

// Valid reports whether addr looks like a deliverable email address.
func Valid(addr string) bool {
	return pattern.MatchString(addr)
}
