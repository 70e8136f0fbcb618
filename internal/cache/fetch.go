// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

// Fetch returns the cached value for key, or builds it, stores it and
// returns it. A cache that cannot be read or written is treated as empty;
// only build errors are returned.
func Fetch(ctx context.Context, c Cacher, key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, error) {
	if data, err := c.Get(ctx, key); err == nil {
		return data, nil
	}

	data, err := build()
	if err != nil {
		return nil, err
	}

	_ = c.Set(ctx, key, data, ttl)
	return data, nil
}
