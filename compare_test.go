package deque_test

import (
	"strings"
	"testing"

	"github.com/sixall/deque"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b []int
		want bool
	}{
		{name: "both-empty", a: nil, b: nil, want: true},
		{name: "same", a: []int{1, 2, 3}, b: []int{1, 2, 3}, want: true},
		{name: "different", a: []int{1, 2, 3}, b: []int{1, 2, 4}, want: false},
		{name: "shorter", a: []int{1, 2}, b: []int{1, 2, 3}, want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := deque.FromSlice(c.a), deque.FromSlice(c.b)
			if got := deque.Equal(a, b); got != c.want {
				t.Errorf("wrong result: want %v, got %v", c.want, got)
			}
			if !deque.Equal(a, a) {
				t.Errorf("deque not equal to itself")
			}
		})
	}
	var nilDeque *deque.Deque[int]
	if !deque.Equal(nilDeque, nilDeque) {
		t.Errorf("nil deques not equal")
	}
	if deque.Equal(nilDeque, deque.New[int]()) {
		t.Errorf("nil deque equal to empty deque")
	}
	// Equal layouts are not required, only equal contents.
	a := deque.FromSlice(ints(0, 100))
	b := deque.New[int]()
	for i := 99; i >= 0; i-- {
		b.PushFront(i)
	}
	if !deque.Equal(a, b) {
		t.Errorf("differently built deques with same contents not equal")
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b []int
		want int
	}{
		{name: "equal", a: []int{1, 2}, b: []int{1, 2}, want: 0},
		{name: "less", a: []int{1, 2}, b: []int{1, 3}, want: -1},
		{name: "greater", a: []int{2}, b: []int{1, 9}, want: 1},
		{name: "prefix", a: []int{1}, b: []int{1, 0}, want: -1},
		{name: "empty-vs-any", a: nil, b: []int{0}, want: -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := deque.FromSlice(c.a), deque.FromSlice(c.b)
			if got := deque.Compare(a, b); got != c.want {
				t.Errorf("wrong result: want %d, got %d", c.want, got)
			}
			if got := deque.Compare(b, a); got != -c.want {
				t.Errorf("wrong reversed result: want %d, got %d", -c.want, got)
			}
		})
	}
}

func TestCompareFunc(t *testing.T) {
	a := deque.Of("a", "B")
	b := deque.Of("A", "b")
	if deque.Compare(a, b) == 0 {
		t.Errorf("case-sensitive compare found equal")
	}
	eq := func(x, y string) bool { return strings.EqualFold(x, y) }
	if !deque.EqualFunc(a, b, eq) {
		t.Errorf("case-insensitive equality failed")
	}
	ci := func(x, y string) int { return strings.Compare(strings.ToLower(x), strings.ToLower(y)) }
	if got := deque.CompareFunc(a, b, ci); got != 0 {
		t.Errorf("case-insensitive compare: want 0, got %d", got)
	}
}
