package auth

// AdminGroup is the directory group whose members administer the portal.
const AdminGroup = "Web Admins"

// IsAdmin reports whether the group list grants administrator access.
// The match is exact and case-sensitive; directory group hierarchies are
// intentionally not walked.
func IsAdmin(groups []string) bool {
	for _, g := range groups {
		if g == AdminGroup {
			return true
		}
	}
	return false
}
