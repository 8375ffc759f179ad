// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a bounded LRU cache for derived render data such
// as shaped text advances and rasterized label images.
//
//	c := cache.New[string, int](64)
//	v, err := c.GetOrCreate("key", func() (int, error) { return 42, nil })
//
// # Thread Safety
//
// LRU is safe for concurrent use. It must not be copied after creation.
package cache
