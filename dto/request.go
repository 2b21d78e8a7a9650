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

package dto

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/daily"
	"github.com/zintix-labs/romlab/errs"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
	MaxHotK         = 100
	DefaultDays     = 365
	// MaxCoverageN 為 HTTP 掃描的目錄大小上限，低於 stats.MaxSweepEntries。
	MaxCoverageN = 10000
)

// HotRequest 對應 GET /v1/hot。Date 為 nil 代表今天；K 為 nil 代表伺服器預設。
type HotRequest struct {
	Date     *daily.Date
	K        *int
	Annotate bool
}

// GamesRequest 對應 GET /v1/games。
type GamesRequest struct {
	Query catalog.Query
	Page  int
	Size  int
}

// CoverageRequest 對應 GET /v1/coverage。零值欄位由 handler 補預設。
type CoverageRequest struct {
	From *daily.Date
	Days int
	N    int
	K    int
}

func DecodeHotRequest(r *http.Request) (*HotRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	req := new(HotRequest)
	var err error
	if req.Date, err = optDate(q, "date"); err != nil {
		return nil, err
	}
	if q.Get("k") != "" {
		k, err := intIn(q, "k", 0, MaxHotK)
		if err != nil {
			return nil, err
		}
		req.K = &k
	}
	if req.Annotate, err = optBool(q, "annotate"); err != nil {
		return nil, err
	}
	return req, nil
}

func DecodeGamesRequest(r *http.Request) (*GamesRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	req := &GamesRequest{
		Query: catalog.Query{
			Text:     strings.TrimSpace(q.Get("q")),
			Category: strings.TrimSpace(q.Get("category")),
			Platform: strings.TrimSpace(q.Get("platform")),
			Region:   strings.TrimSpace(q.Get("region")),
		},
		Page: 1,
		Size: DefaultPageSize,
	}
	var err error
	if req.Query.Fuzzy, err = optBool(q, "fuzzy"); err != nil {
		return nil, err
	}
	if q.Has("page") {
		if req.Page, err = intIn(q, "page", 1, 1<<20); err != nil {
			return nil, err
		}
	}
	if q.Has("size") {
		if req.Size, err = intIn(q, "size", 1, MaxPageSize); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// DecodeCoverageRequest 解析掃描參數；maxDays 為伺服器允許的天數上限。
func DecodeCoverageRequest(r *http.Request, maxDays int) (*CoverageRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	req := &CoverageRequest{Days: min(DefaultDays, maxDays)}
	var err error
	if req.From, err = optDate(q, "from"); err != nil {
		return nil, err
	}
	if q.Has("days") {
		if req.Days, err = intIn(q, "days", 1, maxDays); err != nil {
			return nil, err
		}
	}
	if q.Has("n") {
		if req.N, err = intIn(q, "n", 1, MaxCoverageN); err != nil {
			return nil, err
		}
	}
	if q.Has("k") {
		if req.K, err = intIn(q, "k", 1, MaxHotK); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func optDate(q url.Values, key string) (*daily.Date, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	d, err := daily.ParseDate(s)
	if err != nil {
		return nil, errs.InvalidArgf("invalid %s %q", key, s)
	}
	return &d, nil
}

func optBool(q url.Values, key string) (bool, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errs.InvalidArgf("invalid %s %q", key, s)
	}
	return b, nil
}

func intIn(q url.Values, key string, lo, hi int) (int, error) {
	s := strings.TrimSpace(q.Get(key))
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.InvalidArgf("invalid %s %q", key, s)
	}
	if v < lo || v > hi {
		return 0, errs.InvalidArgf("%s must be in [%d, %d], got %d", key, lo, hi, v)
	}
	return v, nil
}
