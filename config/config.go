// Copyright 2025 Zintix Labs
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

// Package config 讀取 romlab 的執行設定：先讀 YAML 檔，再以 ROMLAB_ 開頭的環境變數覆寫。
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/core"
	"github.com/zintix-labs/romlab/server/logger"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 為所有環境變數的前綴，例如 ROMLAB_ADDR、ROMLAB_CATALOG_URL。
const EnvPrefix = "ROMLAB_"

const MaxK = 100

type Config struct {
	Addr      string  `yaml:"addr" env:"ADDR"`
	LogMode   string  `yaml:"log_mode" env:"LOG_MODE"`
	K         int     `yaml:"k" env:"K"`
	Generator string  `yaml:"generator" env:"GENERATOR"`
	Timezone  string  `yaml:"timezone" env:"TIMEZONE"`
	Catalog   Catalog `yaml:"catalog" envPrefix:"CATALOG_"`
}

// Catalog 描述目錄來源。URL 優先，失敗時退回 File，再退回內嵌範例。
type Catalog struct {
	File     string        `yaml:"file" env:"FILE"`
	URL      string        `yaml:"url" env:"URL"`
	Attempts uint          `yaml:"attempts" env:"ATTEMPTS"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

func Default() *Config {
	return &Config{
		Addr:      ":8087",
		LogMode:   "dev",
		K:         12,
		Generator: core.NameMulberry32,
		Timezone:  "Local",
		Catalog: Catalog{
			Attempts: 3,
			Timeout:  10 * time.Second,
		},
	}
}

// Load 讀取 path（空字串代表只用預設值）並套用行程環境變數。
func Load(path string) (*Config, error) {
	return LoadWith(path, nil)
}

// LoadWith 與 Load 相同，但以 environ 取代行程環境變數（nil 代表使用 os 環境）。
func LoadWith(path string, environ map[string]string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.Wrap(err, "read config file")
		}
		if err := cfg.decode(raw); err != nil {
			return nil, errs.WrapWithExtra(err, "decode config file", path)
		}
	}
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errs.Warnf("parse env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFS 從 fs.FS 讀取設定檔，不套用環境變數。
func LoadFS(fsys fs.FS, name string) (*Config, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read config file")
	}
	cfg := Default()
	if err := cfg.decode(raw); err != nil {
		return nil, errs.WrapWithExtra(err, "decode config file", name)
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(raw []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errs.Warnf("yaml: %v", err)
	}
	return nil
}

// Validate 檢查所有欄位；錯誤皆為 Warn 等級（設定問題，非程式錯誤）。
func (c *Config) Validate() error {
	if _, err := logger.ParseMode(c.LogMode); err != nil {
		return err
	}
	if c.K < 0 || c.K > MaxK {
		return errs.InvalidArgf("k must be in [0, %d], got %d", MaxK, c.K)
	}
	if _, err := core.FactoryByName(c.Generator); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Catalog.Timeout < 0 {
		return errs.InvalidArgf("catalog.timeout must be >= 0, got %s", c.Catalog.Timeout)
	}
	if u := c.Catalog.URL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return errs.InvalidArgf("catalog.url must be http(s), got %q", u)
	}
	return nil
}

func (c *Config) Mode() logger.LogMode {
	m, _ := logger.ParseMode(c.LogMode)
	return m
}

// Location 解析 Timezone；空字串或 "Local" 為 time.Local。
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errs.InvalidArgf("unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

// Options 轉成 romlab.New 的選項。
func (c *Config) Options(log *slog.Logger) ([]romlab.Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return []romlab.Option{
		romlab.WithK(c.K),
		romlab.WithGenerator(c.Generator),
		romlab.WithLocation(loc),
		romlab.WithLogger(log),
	}, nil
}

// Source 轉成 romlab.LoadCatalog 的來源；fallback 為最後的內嵌目錄。
func (c *Config) Source(fallback fs.FS, fallbackName string, log *slog.Logger) romlab.Source {
	return romlab.Source{
		URL:          c.Catalog.URL,
		File:         c.Catalog.File,
		Attempts:     c.Catalog.Attempts,
		Timeout:      c.Catalog.Timeout,
		Fallback:     fallback,
		FallbackName: fallbackName,
		Log:          log,
	}
}
