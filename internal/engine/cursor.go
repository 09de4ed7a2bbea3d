package engine

// Cursor selects the pair under comparison. Outer counts the largest values
// already settled at the tail; Inner is the left index of the current pair.
// A terminal cursor has Inner == -1.
type Cursor struct {
	Outer int
	Inner int
}

// Terminal is the cursor value once no pairs remain.
var Terminal = Cursor{Outer: 0, Inner: -1}

// InitialCursor returns the first cursor for an array of the given size.
func InitialCursor(size int) Cursor {
	if size <= 1 {
		return Terminal
	}
	return Cursor{}
}

// IsTerminal reports whether no pair remains to compare.
func (c Cursor) IsTerminal() bool {
	return c.Inner < 0
}

// Left returns the left index of the current pair.
func (c Cursor) Left() int {
	return c.Inner
}

// Right returns the right index of the current pair.
func (c Cursor) Right() int {
	return c.Inner + 1
}

// Settled returns how many tail positions hold their final values.
func (c Cursor) Settled(size int) int {
	if c.IsTerminal() {
		return size
	}
	return c.Outer
}

// InRange reports whether the current pair lies inside an array of the given size.
func (c Cursor) InRange(size int) bool {
	return !c.IsTerminal() && c.Outer >= 0 && c.Inner+1 < size-c.Outer
}

// Advance moves to the next pair after a comparison at c. When the inner loop is
// exhausted the pass closes and the settled tail grows by one; after the last
// pass the terminal cursor is returned.
func Advance(c Cursor, size int) Cursor {
	if c.IsTerminal() {
		return Terminal
	}
	next := c.Inner + 1
	if next >= size-1-c.Outer {
		if c.Outer >= size-2 {
			return Terminal
		}
		return Cursor{Outer: c.Outer + 1, Inner: 0}
	}
	return Cursor{Outer: c.Outer, Inner: next}
}

// TotalComparisons returns the number of comparisons a full run performs.
func TotalComparisons(size int) int {
	if size < 2 {
		return 0
	}
	return size * (size - 1) / 2
}

// ComparisonsDone returns how many comparisons precede cursor c.
func ComparisonsDone(c Cursor, size int) int {
	if c.IsTerminal() {
		return TotalComparisons(size)
	}
	done := 0
	for pass := 0; pass < c.Outer; pass++ {
		done += size - 1 - pass
	}
	return done + c.Inner
}
