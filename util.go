package main

import (
	"math"
	"strconv"
	"strings"
)

// lowestUnused returns the smallest non-negative integer not in taken
func lowestUnused(taken map[int]bool) int {
	n := 0
	for taken[n] {
		n++
	}
	return n
}

// idSuffix returns the part of an ID after its first '-' separator.
// "11-7" -> "7", "C-3" -> "3", "31-7.0" -> "7.0".
func idSuffix(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// suffixNumber parses the leading integer of an ID suffix ("7.0" -> 7)
func suffixNumber(suffix string) (int, bool) {
	if i := strings.IndexByte(suffix, '.'); i >= 0 {
		suffix = suffix[:i]
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// creatorSuffix returns the owning entity's suffix embedded in an attack ID
func creatorSuffix(attackID string) string {
	s := idSuffix(attackID)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Distance returns the Euclidean distance between two points, truncated
func Distance(a, b Vec) int {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}
