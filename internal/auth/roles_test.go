package auth

import "testing"

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		name   string
		groups []string
		want   bool
	}{
		{"admin group present", []string{"Employees", "Web Admins"}, true},
		{"admin group only", []string{"Web Admins"}, true},
		{"admin group absent", []string{"Employees", "Operators"}, false},
		{"empty set", nil, false},
		{"case variant is not a match", []string{"web admins"}, false},
		{"upper case variant is not a match", []string{"WEB ADMINS"}, false},
		{"substring is not a match", []string{"Web Admins Backup"}, false},
		{"no hierarchy resolution", []string{"All Admins"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAdmin(tc.groups); got != tc.want {
				t.Errorf("IsAdmin(%v) = %v, want %v", tc.groups, got, tc.want)
			}
		})
	}
}
