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

// Package romlab 是 ROM 目錄與每日精選的「組裝入口（assembler）」。
//
// 它把三個地基組裝在一起：
//  1. Catalog：遊戲目錄（SSOT），組裝完成後凍結、只讀。
//  2. Selector：每日精選的參數（k 與 PRNG 工廠），決定同一天永遠得到同一批精選。
//  3. Clock + Location：「今天」是哪一天由注入的時鐘與時區決定，方便測試與跨時區部署。
//
// 典型使用情境：
//   - HTTP 服務：server 套件持有 *Romlab，提供 /v1/hot、/v1/games。
//   - CLI：cmd/romlab 直接呼叫 Hot / Search / Coverage。
package romlab

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/daily"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/core"
	"github.com/zintix-labs/romlab/stats"
)

type Romlab struct {
	cat *catalog.Catalog
	sel daily.Selector
	loc *time.Location
	now func() time.Time
	log *slog.Logger
}

type Option func(*Romlab) error

// WithK 設定每日精選數量；k = 0 代表 daily.DefaultK。
func WithK(k int) Option {
	return func(r *Romlab) error {
		if k < 0 {
			return errs.InvalidArgf("k must be >= 0, got %d", k)
		}
		if k == 0 {
			k = daily.DefaultK
		}
		r.sel.K = k
		return nil
	}
}

// WithGenerator 依名稱選擇 PRNG（mulberry32 | pcg32）。
func WithGenerator(name string) Option {
	return func(r *Romlab) error {
		f, err := core.FactoryByName(name)
		if err != nil {
			return err
		}
		r.sel.Factory = f
		return nil
	}
}

// WithLocation 設定判斷「今天」所用的時區；nil 代表 time.Local。
func WithLocation(loc *time.Location) Option {
	return func(r *Romlab) error {
		if loc == nil {
			loc = time.Local
		}
		r.loc = loc
		return nil
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Romlab) error {
		if now == nil {
			return errs.NewFatal("clock is nil")
		}
		r.now = now
		return nil
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(r *Romlab) error {
		if log != nil {
			r.log = log
		}
		return nil
	}
}

// New 組裝 Romlab。cat 會被凍結，之後不可再 Register。
func New(cat *catalog.Catalog, opts ...Option) (*Romlab, error) {
	if cat == nil {
		return nil, errs.NewFatal("catalog required")
	}
	r := &Romlab{
		cat: cat,
		sel: daily.Selector{K: daily.DefaultK, Factory: core.Default()},
		loc: time.Local,
		now: time.Now,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	cat.Freeze()
	return r, nil
}

func (r *Romlab) Catalog() *catalog.Catalog { return r.cat }
func (r *Romlab) K() int                    { return r.sel.K }
func (r *Romlab) Generator() string         { return r.sel.Factory.Name() }
func (r *Romlab) Location() *time.Location  { return r.loc }

// Today 回傳設定時區下的今天。
func (r *Romlab) Today() daily.Date {
	return daily.FromTime(r.now().In(r.loc))
}

// Hot 回傳 date 當天的精選。
func (r *Romlab) Hot(date daily.Date) ([]catalog.Entry, error) {
	return daily.Pick(r.sel, r.cat.All(), date)
}

// HotK 與 Hot 相同但覆寫 k（允許 0）。
func (r *Romlab) HotK(date daily.Date, k int) ([]catalog.Entry, error) {
	return daily.SelectWith(r.sel.Factory, r.cat.All(), date, k)
}

// HotToday 回傳今天的精選與今天的日期。
func (r *Romlab) HotToday() ([]catalog.Entry, daily.Date, error) {
	today := r.Today()
	picks, err := r.Hot(today)
	return picks, today, err
}

// Annotated 依目錄順序回傳所有 entries，並標記 date 當天的精選。
func (r *Romlab) Annotated(date daily.Date) ([]daily.Featured[catalog.Entry], error) {
	return daily.Annotate(r.sel, r.cat.All(), date)
}

// AnnotatedK 與 Annotated 相同但覆寫 k（允許 0）。
func (r *Romlab) AnnotatedK(date daily.Date, k int) ([]daily.Featured[catalog.Entry], error) {
	return daily.AnnotateWith(r.sel.Factory, r.cat.All(), date, k)
}

// Search 過濾目錄並分頁。
func (r *Romlab) Search(q catalog.Query, page, size int) (catalog.Page[catalog.Entry], error) {
	return catalog.Paginate(r.cat.Filter(q), page, size)
}

// Coverage 以目前目錄大小與設定，從 from 起連續 days 天做覆蓋率掃描。
func (r *Romlab) Coverage(from daily.Date, days int, showpb bool) (*stats.CoverageReport, time.Duration, error) {
	return r.CoverageWith(stats.SweepConfig{From: from, Days: days, ShowProgress: showpb})
}

// CoverageWith 執行自訂掃描；cfg 的 N、K、Factory 為零值時套用目前的目錄大小與設定。
func (r *Romlab) CoverageWith(cfg stats.SweepConfig) (*stats.CoverageReport, time.Duration, error) {
	return r.CoverageContext(context.Background(), cfg)
}

// CoverageContext 同 CoverageWith，ctx 取消時中止掃描。
func (r *Romlab) CoverageContext(ctx context.Context, cfg stats.SweepConfig) (*stats.CoverageReport, time.Duration, error) {
	if cfg.N == 0 {
		cfg.N = r.cat.Len()
	}
	if cfg.K == 0 {
		cfg.K = r.sel.K
	}
	if cfg.Factory == nil {
		cfg.Factory = r.sel.Factory
	}
	rep, used, err := stats.SweepContext(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}
	r.log.Debug("coverage sweep", slog.Int("n", cfg.N), slog.Int("days", cfg.Days), slog.Duration("used", used))
	return rep, used, nil
}

// ============================================================
// ** 目錄來源 **
// ============================================================

// Source 描述目錄從哪裡來。優先順序：URL > File > Fallback。
//
// URL 失敗時（重試用盡）會退回 File；File 也沒有時退回 Fallback。
type Source struct {
	URL          string
	File         string
	Attempts     uint
	Timeout      time.Duration
	Fallback     fs.FS
	FallbackName string
	Log          *slog.Logger
}

// LoadCatalog 依 Source 取得 entries、去重並建立凍結的目錄。
func LoadCatalog(ctx context.Context, src Source) (*catalog.Catalog, error) {
	local, localName := src.Fallback, src.FallbackName
	if src.File != "" {
		abs, err := filepath.Abs(src.File)
		if err != nil {
			return nil, errs.Wrap(err, "resolve catalog file")
		}
		local, localName = os.DirFS(filepath.Dir(abs)), filepath.Base(abs)
	}

	var (
		entries []catalog.Entry
		err     error
	)
	switch {
	case src.URL != "":
		f := &catalog.Fetcher{
			URL:          src.URL,
			Attempts:     src.Attempts,
			Timeout:      src.Timeout,
			Fallback:     local,
			FallbackName: localName,
			Log:          src.Log,
		}
		entries, err = f.Fetch(ctx)
	case local != nil:
		entries, err = catalog.LoadFS(local, localName)
		if err == nil {
			entries, _ = catalog.Dedupe(entries)
		}
	default:
		return nil, errs.NewWarn("catalog source required: url, file or fallback")
	}
	if err != nil {
		return nil, err
	}
	return catalog.NewWith(entries...)
}
