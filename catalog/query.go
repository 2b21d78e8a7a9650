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
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/zintix-labs/romlab/errs"
)

// Query 描述一次目錄查詢。空欄位代表不過濾。
type Query struct {
	Text     string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	Platform string `json:"platform,omitempty"`
	Region   string `json:"region,omitempty"`
	Fuzzy    bool   `json:"fuzzy,omitempty"` // Text 以模糊比對名稱並依距離排序
}

// Search 不分大小寫，名稱或任一分類包含 query 即命中；空 query 回傳全部。
func (c *Catalog) Search(query string) []Entry {
	q := norm(query)
	if q == "" {
		return c.All()
	}
	out := make([]Entry, 0, 16)
	for _, e := range c.entries {
		if matchText(e, q) {
			out = append(out, e)
		}
	}
	return out
}

// FuzzySearch 以模糊比對名稱，結果依編輯距離由近到遠排序（同距離維持目錄順序）。
func (c *Catalog) FuzzySearch(query string) []Entry {
	return c.fuzzyOver(c.entries, query)
}

// Filter 依 Query 過濾。非模糊模式下維持目錄順序。
func (c *Catalog) Filter(q Query) []Entry {
	out := make([]Entry, 0, len(c.entries))
	text := norm(q.Text)
	for _, e := range c.entries {
		if q.Category != "" && !slices.ContainsFunc(e.Categories, func(s string) bool { return norm(s) == norm(q.Category) }) {
			continue
		}
		if q.Platform != "" && norm(e.Platform) != norm(q.Platform) {
			continue
		}
		if q.Region != "" && norm(e.Region) != norm(q.Region) {
			continue
		}
		if !q.Fuzzy && text != "" && !matchText(e, text) {
			continue
		}
		out = append(out, e)
	}
	if q.Fuzzy && text != "" {
		return c.fuzzyOver(out, q.Text)
	}
	return out
}

func (c *Catalog) fuzzyOver(src []Entry, query string) []Entry {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(src)
	}
	targets := make([]string, len(src))
	for i, e := range src {
		targets[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), targets)
	sort.Stable(ranks)
	out := make([]Entry, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, src[r.OriginalIndex])
	}
	return out
}

func matchText(e Entry, q string) bool {
	if strings.Contains(norm(e.Name), q) {
		return true
	}
	for _, c := range e.Categories {
		if strings.Contains(norm(c), q) {
			return true
		}
	}
	return false
}

// ============================================================
// ** 分頁 **
// ============================================================

// Page 是一頁查詢結果。Page 從 1 開始。
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginate 切出第 page 頁（每頁 size 筆）。
//
// page < 1 或 size < 1 為 InvalidArgument；超出最後一頁回傳空 Items，但 Total/Pages 仍正確。
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	if page < 1 {
		return Page[T]{}, errs.InvalidArgf("page must be >= 1, got %d", page)
	}
	if size < 1 {
		return Page[T]{}, errs.InvalidArgf("size must be >= 1, got %d", size)
	}
	total := len(items)
	p := Page[T]{
		Page:  page,
		Size:  size,
		Total: total,
		Pages: (total + size - 1) / size,
	}
	start := (page - 1) * size
	if start >= total {
		p.Items = []T{}
		return p, nil
	}
	end := min(start+size, total)
	p.Items = slices.Clone(items[start:end])
	return p, nil
}
