// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/patrickmn/go-cache"
)

// NewRenderCache creates the cache holding rendered dumps. Entries are keyed
// by tree generation, so a stale rendering is never served after a mutation.
func NewRenderCache(config CacheConfig) *cache.Cache {
	return cache.New(config.TTL, config.Cleanup)
}

func CacheRendering(c *cache.Cache, key string, text string) {
	// Set rather than Add: re-rendering the same generation just refreshes it
	c.Set(key, text, cache.DefaultExpiration)
}

func GetRendering(c *cache.Cache, key string) string {
	val, ok := c.Get(key)
	if !ok {
		return ""
	}
	return val.(string)
}
