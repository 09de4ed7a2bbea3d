package generator

import "testing"

func TestSeededGeneratorRepeats(t *testing.T) {
	a, err := NewSeeded(11).Array(8, 10, 100)
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	b, err := NewSeeded(11).Array(8, 10, 100)
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical arrays, got %v and %v", a, b)
		}
	}
}

func TestFixedReturnsCopy(t *testing.T) {
	f := Fixed{3, 1, 2}
	arr, err := f.Array(0, 0, 0)
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	arr[0] = 99
	if f[0] != 3 {
		t.Fatalf("fixed source mutated: %v", f)
	}
}
