package academic

// lcg is the seeded generator behind Select: a = (a*9301 + 49297) mod 233280.
type lcg struct {
	a int
}

func newLCG(seed string) *lcg {
	a := 1
	for _, c := range utf16Units(seed) {
		a = (a + int(c)) % 1000
	}
	return &lcg{a: a}
}

// next returns a value in [0, 1).
func (g *lcg) next() float64 {
	g.a = (g.a*9301 + 49297) % 233280
	return float64(g.a) / 233280
}

// compare is the comparator "rnd() - 0.5": it ignores its operands.
func (g *lcg) compare() float64 {
	return g.next() - 0.5
}

// Shuffle returns a reordered copy of pool, reproducible for a given seed.
//
// The order is what a comparator-driven sort produces when every comparison
// draws from the generator: an initial run is detected from the first
// comparisons (reversed when descending) and the rest is placed by binary
// insertion. pool is never modified.
func Shuffle[T any](pool []T, seed string) []T {
	a := append([]T(nil), pool...)
	n := len(a)
	if n < 2 {
		return a
	}
	g := newLCG(seed)

	run := countAndMakeRun(a, g)
	binaryInsertionSort(a, run, g)
	return a
}

// Select returns the first count elements of Shuffle(pool, seed).
// count larger than the pool returns the whole shuffled pool; count <= 0 returns nothing.
func Select[T any](pool []T, count int, seed string) []T {
	shuffled := Shuffle(pool, seed)
	if count <= 0 {
		return []T{}
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func countAndMakeRun[T any](a []T, g *lcg) int {
	n := len(a)
	run := 2
	descending := g.compare() < 0
	for i := 2; i < n; i++ {
		order := g.compare()
		if descending {
			if order >= 0 {
				break
			}
		} else if order < 0 {
			break
		}
		run++
	}
	if descending {
		for i, j := 0, run-1; i < j; i, j = i+1, j-1 {
			a[i], a[j] = a[j], a[i]
		}
	}
	return run
}

func binaryInsertionSort[T any](a []T, start int, g *lcg) {
	for ; start < len(a); start++ {
		pivot := a[start]
		left, right := 0, start
		for left < right {
			mid := left + (right-left)/2
			if g.compare() < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(a[left+1:start+1], a[left:start])
		a[left] = pivot
	}
}

// utf16Units mirrors charCodeAt: characters outside the BMP count as two surrogate units.
func utf16Units(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			out = append(out, 0xd800+int(r>>10), 0xdc00+int(r&0x3ff))
			continue
		}
		out = append(out, int(r))
	}
	return out
}
