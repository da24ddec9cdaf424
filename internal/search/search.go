// Package search runs binary searches over sorted int32 slices, either
// serially or split into contiguous sections searched concurrently.
package search

import (
	"context"
	"runtime"
	"sync"
)

// Serial returns the index of target in nums or -1.
func Serial(nums []int32, target int32) int {
	return Range(nums, 0, len(nums)-1, target)
}

// Range binary-searches nums[first..last] (inclusive) and returns the index
// of target or -1.
func Range(nums []int32, first, last int, target int32) int {
	if first < 0 {
		first = 0
	}
	if last >= len(nums) {
		last = len(nums) - 1
	}
	for first <= last {
		mid := first + (last-first)/2
		switch v := nums[mid]; {
		case v == target:
			return mid
		case v < target:
			first = mid + 1
		default:
			last = mid - 1
		}
	}
	return -1
}

// Section is an inclusive index range.
type Section struct{ First, Last int }

// Split divides n elements into k contiguous sections of near-equal size.
// k is clamped to [1, n]; n == 0 yields no sections.
func Split(n, k int) []Section {
	if n <= 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	out := make([]Section, 0, k)
	base, extra := n/k, n%k
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		out = append(out, Section{First: start, Last: start + size - 1})
		start += size
	}
	return out
}

// sectionsPerProc bounds how many sections a request may ask for per
// available processor.
const sectionsPerProc = 4

// rangeFn is swapped in tests to observe worker concurrency.
var rangeFn = Range

// MaxSections is the largest section count Sectioned will use.
func MaxSections() int {
	return runtime.GOMAXPROCS(0) * sectionsPerProc
}

// ClampSections limits a requested section count to [1, MaxSections()].
func ClampSections(n int) int {
	if n < 1 {
		return 1
	}
	if m := MaxSections(); n > m {
		return m
	}
	return n
}

// Sectioned splits nums into at most MaxSections() sections, searches them on
// a pool of worker goroutines and returns the match from the earliest section
// holding target, or -1. A cancelled ctx skips sections not yet started.
func Sectioned(ctx context.Context, nums []int32, target int32, sections int) int {
	secs := Split(len(nums), ClampSections(sections))
	if len(secs) == 0 {
		return -1
	}
	found := make([]int, len(secs))
	for i := range found {
		found[i] = -1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(len(secs))
	for w := 0; w < len(secs); w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				found[i] = rangeFn(nums, secs[i].First, secs[i].Last, target)
			}
		}()
	}

feed:
	for i := range secs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for _, idx := range found {
		if idx >= 0 {
			return idx
		}
	}
	return -1
}
