package domain

import "strings"

const (
	CollectionCourses = "Courses"
	CollectionOrders  = "Orders"
)

// Collections lists every collection the service owns
var Collections = []string{
	CollectionCourses,
	CollectionOrders,
}

// IsExposed reports whether name is on the gateway allow-list. Matching is
// case-sensitive; collection names in the store are case-sensitive too.
func IsExposed(allowed []string, name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, a := range allowed {
		if a == name {
			return true
		}
	}
	return false
}
