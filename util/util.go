package util

import (
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

func Clamp[A constraints.Integer](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs[A constraints.Signed | constraints.Float](v A) A {
	if v < 0 {
		return -v
	}
	return v
}

// ReplaceExtension swaps the extension of path for ext. A dot that belongs
// to a directory name is not an extension.
func ReplaceExtension(path string, ext string) string {
	lastDot := strings.LastIndex(path, ".")
	lastSlash := strings.LastIndexAny(path, `/\`)
	if lastDot == -1 || lastDot < lastSlash {
		return path + ext
	}
	return path[:lastDot] + ext
}

// InDir moves path into dir, keeping its base name. An empty dir leaves the
// path alone.
func InDir(path string, dir string) string {
	if dir == "" {
		return path
	}
	return filepath.Join(dir, filepath.Base(path))
}
