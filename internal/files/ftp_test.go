package files

import (
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	valid := []string{"report.csv", "inverter-firmware-2.1.bin", "notes.txt"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "../etc/passwd", "sub/dir.txt", "back\\slash", "a..b"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestSortEntries(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Name: "z-last.log", Modified: now},
		{Name: "a-first.csv", Modified: now},
		{Name: "m-middle.txt", Modified: now},
	}
	sortEntries(entries)

	want := []string{"a-first.csv", "m-middle.txt", "z-last.log"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}
}
