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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadConfigFrom returned error: %v", err)
	}
	if *config != defaultConfig {
		t.Errorf("config = %+v; want defaults %+v", *config, defaultConfig)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avlmap.yaml")
	data := `display:
  layout: lines
filter:
  expected_keys: 500
cache:
  ttl: 2m
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := loadConfigFrom(path)
	if err != nil {
		t.Fatalf("loadConfigFrom returned error: %v", err)
	}

	if config.Display.Layout != LayoutLines {
		t.Errorf("Layout = %q; want %q", config.Display.Layout, LayoutLines)
	}
	if config.Filter.ExpectedKeys != 500 {
		t.Errorf("ExpectedKeys = %d; want 500", config.Filter.ExpectedKeys)
	}
	if config.Cache.TTL != 2*time.Minute {
		t.Errorf("TTL = %v; want 2m", config.Cache.TTL)
	}
	if config.Log.Level != "debug" {
		t.Errorf("Level = %q; want debug", config.Log.Level)
	}
	// untouched sections keep their defaults
	if !config.Filter.Enabled || config.Filter.FalsePositiveRate != defaultConfig.Filter.FalsePositiveRate {
		t.Errorf("filter defaults were lost: %+v", config.Filter)
	}
	if config.Cache.Cleanup != defaultConfig.Cache.Cleanup {
		t.Errorf("Cleanup = %v; want %v", config.Cache.Cleanup, defaultConfig.Cache.Cleanup)
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avlmap.yaml")
	data := `display:
  layout: sideways
filter:
  false_positive_rate: 2
log:
  level: shouting
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, _ := loadConfigFrom(path)
	if config.Display.Layout != LayoutInline {
		t.Errorf("Layout = %q; want fallback %q", config.Display.Layout, LayoutInline)
	}
	if config.Filter.FalsePositiveRate != 0.01 {
		t.Errorf("FalsePositiveRate = %v; want 0.01", config.Filter.FalsePositiveRate)
	}
	if config.Log.Level != "warn" {
		t.Errorf("Level = %q; want warn", config.Log.Level)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avlmap.yaml")
	if err := os.WriteFile(path, []byte("display: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := loadConfigFrom(path)
	if err != nil {
		t.Fatalf("loadConfigFrom returned error: %v", err)
	}
	if *config != defaultConfig {
		t.Errorf("config = %+v; want defaults", *config)
	}
}

func TestWriteDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avlmap.yaml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig returned error: %v", err)
	}

	config, _ := loadConfigFrom(path)
	if *config != defaultConfig {
		t.Errorf("written defaults read back as %+v", *config)
	}
}
