// Copyright 2025 The gemmflux Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// Range is the half-open interval [Start, End) handed to one work unit.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into min(n, parts) contiguous, non-overlapping
// ranges covering every index exactly once. Sizes differ by at most one; the
// first n%parts ranges get the extra index.
//
// The result depends only on n and parts. It returns nil when n <= 0.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	base, extra := n/parts, n%parts

	ranges := make([]Range, parts)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}
