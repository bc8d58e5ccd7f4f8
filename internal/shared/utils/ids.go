package utils

import "regexp"

var (
	userIDPattern = regexp.MustCompile(`^U[0-9]+$`)
	bookIDPattern = regexp.MustCompile(`^B[0-9]+$`)
)

// IsValidUserID reports whether id has the U-prefixed numeric form.
func IsValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// IsValidBookID reports whether id has the B-prefixed numeric form.
func IsValidBookID(id string) bool {
	return bookIDPattern.MatchString(id)
}
