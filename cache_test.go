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
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestCacheRenderingAndGetRendering(t *testing.T) {
	c := NewRenderCache(defaultConfig.Cache)
	key := "dump:inline:7"
	text := "{ key: 1, value: 2 }"

	// Initially, GetRendering should return an empty string for a missing key.
	if got := GetRendering(c, key); got != "" {
		t.Errorf("GetRendering(%q) = %q; want empty string", key, got)
	}

	CacheRendering(c, key, text)

	if got := GetRendering(c, key); got != text {
		t.Errorf("GetRendering(%q) = %q; want %q", key, got, text)
	}
}

func TestCacheExpiration(t *testing.T) {
	// Create a cache with a very short expiration time to test expiry behavior.
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)
	key := "dump:lines:1"
	text := "This rendering should expire soon."

	CacheRendering(c, key, text)

	if got := GetRendering(c, key); got != text {
		t.Errorf("GetRendering(%q) = %q; want %q", key, got, text)
	}

	// Wait longer than the expiration duration.
	time.Sleep(150 * time.Millisecond)

	if got := GetRendering(c, key); got != "" {
		t.Errorf("After expiration, GetRendering(%q) = %q; want empty string", key, got)
	}
}
