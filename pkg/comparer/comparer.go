// Package comparer partitions file paths by an extracted attribute.
package comparer

import "fmt"

// Group is an ordered list of paths that share the same attribute
type Group []string

// GroupBy scans paths left to right and buckets them by the value key returns.
// Only buckets with two or more members are returned. Groups come back in the
// order their key was first seen and members keep their scan order.
//
// The first key error aborts the whole call; no partial result is returned.
func GroupBy[K comparable](paths []string, key func(path string) (K, error)) ([]Group, error) {
	index := make(map[K]int)
	var buckets []Group

	for _, path := range paths {
		k, err := key(path)
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", path, err)
		}

		if i, ok := index[k]; ok {
			buckets[i] = append(buckets[i], path)
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, Group{path})
	}

	groups := []Group{}
	for _, bucket := range buckets {
		if len(bucket) > 1 {
			groups = append(groups, bucket)
		}
	}
	return groups, nil
}

// Flatten concatenates the members of groups in order
func Flatten(groups []Group) []string {
	var n int
	for _, g := range groups {
		n += len(g)
	}

	paths := make([]string, 0, n)
	for _, g := range groups {
		paths = append(paths, g...)
	}
	return paths
}
