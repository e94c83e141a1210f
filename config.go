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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	LayoutInline = "inline"
	LayoutLines  = "lines"
)

type DisplayConfig struct {
	Layout     string `yaml:"layout"`      // dump rendering: inline or lines
	ShowValues bool   `yaml:"show_values"` // print draws values next to keys
}

type LoaderConfig struct {
	ShowProgress  bool   `yaml:"show_progress"`
	DefaultFormat string `yaml:"default_format"` // empty means infer from the file name
}

type FilterConfig struct {
	Enabled           bool    `yaml:"enabled"`
	ExpectedKeys      uint    `yaml:"expected_keys"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`
}

type CacheConfig struct {
	TTL     time.Duration `yaml:"ttl"`
	Cleanup time.Duration `yaml:"cleanup"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Loader  LoaderConfig  `yaml:"loader"`
	Filter  FilterConfig  `yaml:"filter"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

var defaultConfig = Config{
	Display: DisplayConfig{
		Layout:     LayoutInline,
		ShowValues: false,
	},
	Loader: LoaderConfig{
		ShowProgress: true,
	},
	Filter: FilterConfig{
		Enabled:           true,
		ExpectedKeys:      100000,
		FalsePositiveRate: 0.01,
	},
	Cache: CacheConfig{
		TTL:     30 * time.Minute,
		Cleanup: 5 * time.Minute,
	},
	Log: LogConfig{
		Level: "warn",
	},
}

// LoadConfig reads ~/.avlmap.yaml. A missing or unreadable file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := defaultConfig
		return &config, nil
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) (*Config, error) {
	config := defaultConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warnf("cannot read %s, using defaults", configPath)
		}
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		logrus.WithError(err).Warnf("cannot parse %s, using defaults", configPath)
		config = defaultConfig
		return &config, nil
	}

	config.normalize()
	return &config, nil
}

// normalize replaces out-of-range settings with their defaults.
func (c *Config) normalize() {
	if c.Display.Layout != LayoutInline && c.Display.Layout != LayoutLines {
		c.Display.Layout = defaultConfig.Display.Layout
	}
	if c.Filter.ExpectedKeys == 0 {
		c.Filter.ExpectedKeys = defaultConfig.Filter.ExpectedKeys
	}
	if c.Filter.FalsePositiveRate <= 0 || c.Filter.FalsePositiveRate >= 1 {
		c.Filter.FalsePositiveRate = defaultConfig.Filter.FalsePositiveRate
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultConfig.Cache.TTL
	}
	if c.Cache.Cleanup <= 0 {
		c.Cache.Cleanup = defaultConfig.Cache.Cleanup
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = defaultConfig.Log.Level
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".avlmap.yaml"), nil
}

func writeDefaultConfig(configPath string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("❌ Failed to get config path: %v\n", err)
		return
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		if err := writeDefaultConfig(configPath); err != nil {
			fmt.Printf("❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", configPath)
	}

	config, _ := loadConfigFrom(configPath)

	fmt.Printf("🔧 avlmap Configuration Settings\n")
	fmt.Printf("═══════════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s\n\n", configPath)
	} else {
		fmt.Printf("📍 Config file: %s (newly created)\n\n", configPath)
	}

	fmt.Printf("%sdisplay%s\n", Green, Reset)
	fmt.Printf("  • layout: %s\n", config.Display.Layout)
	fmt.Printf("  • show_values: %t\n\n", config.Display.ShowValues)

	fmt.Printf("%sloader%s\n", Green, Reset)
	fmt.Printf("  • show_progress: %t\n", config.Loader.ShowProgress)
	fmt.Printf("  • default_format: %q\n\n", config.Loader.DefaultFormat)

	fmt.Printf("%sfilter%s\n", Green, Reset)
	fmt.Printf("  • enabled: %t\n", config.Filter.Enabled)
	fmt.Printf("  • expected_keys: %d\n", config.Filter.ExpectedKeys)
	fmt.Printf("  • false_positive_rate: %g\n\n", config.Filter.FalsePositiveRate)

	fmt.Printf("%scache%s\n", Green, Reset)
	fmt.Printf("  • ttl: %s\n", config.Cache.TTL)
	fmt.Printf("  • cleanup: %s\n\n", config.Cache.Cleanup)

	fmt.Printf("%slog%s\n", Green, Reset)
	fmt.Printf("  • level: %s\n", config.Log.Level)
}
