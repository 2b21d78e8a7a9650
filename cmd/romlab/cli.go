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

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/config"
	"github.com/zintix-labs/romlab/daily"
	"github.com/zintix-labs/romlab/demo/demo_catalog"
	"github.com/zintix-labs/romlab/server/logger"
)

type CLI struct {
	Globals

	Hot      hotCmd      `cmd:"" help:"Show the daily hot picks."`
	Search   searchCmd   `cmd:"" help:"Search the catalog."`
	Coverage coverageCmd `cmd:"" help:"Sweep many days and report selection coverage."`
	Serve    serveCmd    `cmd:"" help:"Run the HTTP API."`
}

// Globals 是所有子命令共用的旗標與執行環境。
type Globals struct {
	Config  string `short:"c" type:"path" env:"ROMLAB_CONFIG" help:"YAML config file."`
	Catalog string `type:"path" help:"Catalog file (json|yaml); overrides config."`
	URL     string `name:"url" help:"Catalog URL; overrides config."`

	out io.Writer `kong:"-"`
}

func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Catalog != "" {
		cfg.Catalog.File = g.Catalog
	}
	if g.URL != "" {
		cfg.Catalog.URL = g.URL
	}
	return cfg, cfg.Validate()
}

// open 讀設定、載入目錄並組出 Romlab。CLI 的 log 一律寫 stderr。
func (g *Globals) open(ctx context.Context, log *slog.Logger, opts ...romlab.Option) (*romlab.Romlab, *config.Config, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, nil, err
	}
	if log == nil {
		log = logger.NewDefaultLogger(logger.ModeSilence)
		if cfg.Mode() != logger.ModeSilence {
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		}
	}
	cat, err := romlab.LoadCatalog(ctx, cfg.Source(demo_catalog.FS, demo_catalog.Name, log))
	if err != nil {
		return nil, nil, err
	}
	base, err := cfg.Options(log)
	if err != nil {
		return nil, nil, err
	}
	lab, err := romlab.New(cat, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return lab, cfg, nil
}

// dateOr 解析 s；空字串回傳 fallback。
func dateOr(s string, fallback daily.Date) (daily.Date, error) {
	if s == "" {
		return fallback, nil
	}
	return daily.ParseDate(s)
}
