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

package catalog

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/zintix-labs/romlab/errs"
)

// maxCatalogBytes 限制遠端目錄大小（32MiB）。
const maxCatalogBytes = 32 << 20

// Fetcher 以 HTTP 取得目錄，失敗時依指數退避重試，全部失敗再退回本地檔案。
//
// 4xx 視為永久錯誤不重試；網路錯誤、5xx、解析失敗會重試。
type Fetcher struct {
	URL      string
	Client   *http.Client
	Attempts uint          // 最多嘗試次數（含第一次），0 取 3
	Timeout  time.Duration // 單次請求逾時，0 取 10s

	// Fallback / FallbackName 為遠端失敗時的本地來源；Fallback 為 nil 則不退回。
	Fallback     fs.FS
	FallbackName string

	Log      *slog.Logger
	backoff  backoff.BackOff // 測試可注入
	maxBytes int64           // 0 取 maxCatalogBytes；測試可注入
}

// Fetch 取得並去重後的目錄 entries。
func (f *Fetcher) Fetch(ctx context.Context) ([]Entry, error) {
	entries, err := f.fetchRemote(ctx)
	if err != nil {
		if f.Fallback == nil || ctx.Err() != nil {
			return nil, err
		}
		f.logger().Warn("catalog fetch failed, using fallback",
			slog.String("url", f.URL),
			slog.String("fallback", f.FallbackName),
			slog.Any("err", err))
		entries, err = LoadFS(f.Fallback, f.FallbackName)
		if err != nil {
			return nil, err
		}
	}
	out, dropped := Dedupe(entries)
	if dropped > 0 {
		f.logger().Info("catalog dedupe", slog.Int("dropped", dropped), slog.Int("kept", len(out)))
	}
	return out, nil
}

func (f *Fetcher) limit() int64 {
	if f.maxBytes > 0 {
		return f.maxBytes
	}
	return maxCatalogBytes
}

func (f *Fetcher) fetchRemote(ctx context.Context) ([]Entry, error) {
	if f.URL == "" {
		return nil, errs.NewWarn("catalog url required")
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = 3
	}
	b := f.backoff
	if b == nil {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 300 * time.Millisecond
		eb.MaxInterval = 5 * time.Second
		eb.RandomizationFactor = 0.3
		b = eb
	}
	notify := func(err error, wait time.Duration) {
		f.logger().Info("catalog fetch retry",
			slog.String("url", f.URL),
			slog.Duration("wait", wait),
			slog.Any("err", err))
	}
	return backoff.Retry(ctx, func() ([]Entry, error) {
		return f.once(ctx)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(attempts), backoff.WithNotify(notify))
}

func (f *Fetcher) once(ctx context.Context) ([]Entry, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(errs.Wrap(err, "build catalog request"))
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, backoff.Permanent(errs.Warnf("fetch catalog: status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Fatalf("fetch catalog: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.limit()+1))
	if err != nil {
		return nil, errs.Wrap(err, "read catalog body")
	}
	if int64(len(raw)) > f.limit() {
		return nil, backoff.Permanent(errs.Warnf("catalog exceeds %d bytes", f.limit()))
	}
	return Decode(remoteName(req.URL.Path), raw)
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Log
}

// remoteName 讓 Decode 依 URL 副檔名選擇格式；沒有可辨識副檔名時當成 JSON。
func remoteName(p string) string {
	switch path.Ext(p) {
	case ".yaml", ".yml", ".json":
		return path.Base(p)
	default:
		return "catalog.json"
	}
}
