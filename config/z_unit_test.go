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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/logger"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "romlab.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadWith("", map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8087" || cfg.K != 12 || cfg.Generator != "mulberry32" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Catalog.Attempts != 3 || cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Mode() != logger.ModeDev {
		t.Fatalf("unexpected mode: %v", cfg.Mode())
	}
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, `
addr: ":9000"
log_mode: prod
k: 8
generator: pcg32
timezone: Asia/Taipei
catalog:
  file: ./games.json
  url: https://roms.example.com/games.json
  attempts: 5
  timeout: 3s
`)
	cfg, err := LoadWith(p, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.K != 8 || cfg.Generator != "pcg32" || cfg.Mode() != logger.ModeProd {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	c := cfg.Catalog
	if c.File != "./games.json" || c.URL != "https://roms.example.com/games.json" || c.Attempts != 5 || c.Timeout != 3*time.Second {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Taipei" {
		t.Fatalf("unexpected location: %v %v", loc, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeFile(t, "k: 8\ncatalog:\n  attempts: 5\n")
	cfg, err := LoadWith(p, map[string]string{
		"ROMLAB_K":                "4",
		"ROMLAB_ADDR":             ":7000",
		"ROMLAB_CATALOG_ATTEMPTS": "2",
		"ROMLAB_CATALOG_TIMEOUT":  "250ms",
		"OTHER_K":                 "99",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.K != 4 || cfg.Addr != ":7000" {
		t.Fatalf("env must override file: %+v", cfg)
	}
	if cfg.Catalog.Attempts != 2 || cfg.Catalog.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected catalog: %+v", cfg.Catalog)
	}
}

func TestEmptyFile(t *testing.T) {
	cfg, err := LoadWith(writeFile(t, ""), map[string]string{})
	if err != nil {
		t.Fatalf("empty file should keep defaults: %v", err)
	}
	if cfg.K != 12 {
		t.Fatalf("unexpected k: %d", cfg.K)
	}
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown field": "color: blue\n",
		"bad k":         "k: -1\n",
		"big k":         "k: 1000\n",
		"generator":     "generator: xorshift\n",
		"timezone":      "timezone: Mars/Olympus\n",
		"log mode":      "log_mode: loud\n",
		"url scheme":    "catalog:\n  url: ftp://x/games.json\n",
	}
	for name, body := range cases {
		_, err := LoadWith(writeFile(t, body), map[string]string{})
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if errs.LevelOf(err) != errs.Warn {
			t.Fatalf("%s: expected warn level, got %v", name, err)
		}
	}
	if _, err := LoadWith("", map[string]string{"ROMLAB_K": "many"}); err == nil {
		t.Fatalf("bad env value must fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file must fail")
	}
}

func TestLoadFSAndOptions(t *testing.T) {
	fsys := fstest.MapFS{"romlab.yaml": {Data: []byte("k: 5\ntimezone: UTC\n")}}
	cfg, err := LoadFS(fsys, "romlab.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := cfg.Options(nil)
	if err != nil || len(opts) != 4 {
		t.Fatalf("unexpected options: %d %v", len(opts), err)
	}
	src := cfg.Source(fsys, "games.json", nil)
	if src.Attempts != 3 || src.FallbackName != "games.json" {
		t.Fatalf("unexpected source: %+v", src)
	}
}
