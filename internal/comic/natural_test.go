package comic

import (
	"sort"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"page2", "page10", true},
		{"page10", "page2", false},
		{"Page1", "page2", true},
		{"p01", "p1", true},
		{"p1", "p01", false},
		{"ch1/p9", "ch2/p1", true},
		{"a", "ab", true},
		{"", "a", true},
		{"same", "same", false},
		{"99999999999999999999", "100000000000000000000", true},
	}
	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNaturalLessSortsPageLists(t *testing.T) {
	names := []string{"10.jpg", "1.jpg", "2.jpg", "cover.jpg", "001a.jpg"}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })

	want := []string{"1.jpg", "001a.jpg", "2.jpg", "10.jpg", "cover.jpg"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
