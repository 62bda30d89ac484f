package problemgen

import (
	"fmt"
	"strings"
)

type bucket struct{ min, max int }

var additionBuckets = []bucket{
	{1, 5}, {1, 9}, {2, 12}, {5, 18}, {5, 25}, {10, 50}, {20, 80}, {50, 200},
}

var subtractionBuckets = []bucket{
	{1, 5}, {1, 9}, {3, 15}, {5, 20}, {8, 30}, {10, 50}, {20, 80}, {50, 200},
}

// multiplicationMax is the largest factor per level, capped at the last entry.
var multiplicationMax = []int{2, 3, 5, 5, 8, 10}

func bucketFor(buckets []bucket, level int) bucket {
	return buckets[min(level, len(buckets)-1)]
}

func (g *Generator) addition(level int) *Problem {
	r := bucketFor(additionBuckets, level)
	a := g.between(r.min, r.max)
	b := g.between(r.min, r.max)

	var hint string
	switch {
	case level <= 1:
		hint = fmt.Sprintf("Start at %d, count up %d!", a, b)
	case level <= 3:
		half := b / 2
		hint = fmt.Sprintf("%d + %d = %d, then + %d!", a, half, a+half, b-half)
	default:
		tens := b / 10 * 10
		hint = fmt.Sprintf("Split: %d + %d = %d, then + %d = ?", a, tens, a+tens, b%10)
	}

	return &Problem{
		Text:     fmt.Sprintf("%d + %d = ?", a, b),
		Value:    a + b,
		Hint:     hint,
		Operands: []int{a, b},
	}
}

func (g *Generator) subtraction(level int) *Problem {
	r := bucketFor(subtractionBuckets, level)
	a := g.between(r.min, r.max)
	b := g.between(1, min(a, r.max))
	if b > a {
		a, b = b, a
	}

	var hint string
	switch {
	case level <= 1:
		hint = fmt.Sprintf("Start at %d, count back %d!", a, b)
	case level <= 3:
		hint = fmt.Sprintf("What + %d = %d?", b, a)
	default:
		half := b / 2
		hint = fmt.Sprintf("%d − %d = %d, then − %d!", a, half, a-half, b-half)
	}

	return &Problem{
		Text:     fmt.Sprintf("%d − %d = ?", a, b),
		Value:    a - b,
		Hint:     hint,
		Operands: []int{a, b},
	}
}

func (g *Generator) multiplication(level int) *Problem {
	limit := multiplicationMax[min(level, len(multiplicationMax)-1)]
	a := g.between(1, limit)
	b := g.between(1, limit)
	if level <= 1 {
		a = min(a, 3)
		b = min(b, 5)
	}

	groups := make([]string, min(a, 5))
	for i := range groups {
		groups[i] = fmt.Sprint(b)
	}
	sum := strings.Join(groups, "+")
	if a > 5 {
		sum += "+..."
	}

	return &Problem{
		Text:     fmt.Sprintf("%d × %d = ?", a, b),
		Value:    a * b,
		Hint:     fmt.Sprintf("%d groups of %d: %s = ?", a, b, sum),
		Operands: []int{a, b},
	}
}
