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

// Package catalog 持有 ROM 目錄（Single Source of Truth）並提供查詢。
//
// 目錄在組裝階段 Register，完成後 Freeze；Freeze 之後只讀，可安全並行查詢。
package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/zintix-labs/romlab/errs"
)

var (
	ErrDupEntry = errs.NewWarn("duplicate catalog entry")
	ErrFrozen   = errs.NewWarn("can not register when catalog already frozen")
)

// Entry 是一筆可下載的遊戲紀錄。欄位名稱對齊 games.json。
type Entry struct {
	Name         string   `json:"name" yaml:"name"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	Categories   []string `json:"categories" yaml:"categories"`
	DownloadLink string   `json:"downloadLink" yaml:"downloadLink"`
	Platform     string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	Region       string   `json:"region,omitempty" yaml:"region,omitempty"`
}

// Key 是去重用的鍵：正規化後的 name + platform。
func (e Entry) Key() string {
	return norm(e.Name) + "|" + norm(e.Platform)
}

type Catalog struct {
	entries []Entry        // 註冊順序
	byKey   map[string]int // Key() -> entries index
	byName  map[string]int // norm(name) -> 第一筆同名 entry
	frozen  bool
}

func New() *Catalog {
	return &Catalog{
		entries: make([]Entry, 0, 256),
		byKey:   map[string]int{},
		byName:  map[string]int{},
	}
}

// NewWith 建立目錄、註冊 entries 並凍結。
func NewWith(entries ...Entry) (*Catalog, error) {
	c := New()
	if err := c.Register(entries...); err != nil {
		return nil, err
	}
	c.Freeze()
	return c, nil
}

// Register 批次註冊。
//
// 原子性：先檢查全部 entries（名稱必填、不可與既有或同批重複），全部通過才寫入。
// 寫入時會修剪名稱與分類前後空白。
func (c *Catalog) Register(entries ...Entry) error {
	if c.frozen {
		return ErrFrozen
	}
	seen := map[string]struct{}{}
	clean := make([]Entry, 0, len(entries))
	for i, e := range entries {
		e = tidy(e)
		if e.Name == "" {
			return errs.Warnf("entry %d: name required", i)
		}
		k := e.Key()
		if _, ok := c.byKey[k]; ok {
			return errs.WrapWithExtra(ErrDupEntry, "register catalog", e.Name)
		}
		if _, ok := seen[k]; ok {
			return errs.WrapWithExtra(ErrDupEntry, "register catalog", e.Name)
		}
		seen[k] = struct{}{}
		clean = append(clean, e)
	}
	for _, e := range clean {
		idx := len(c.entries)
		c.entries = append(c.entries, e)
		c.byKey[e.Key()] = idx
		if _, ok := c.byName[norm(e.Name)]; !ok {
			c.byName[norm(e.Name)] = idx
		}
	}
	return nil
}

// Dedupe 依 Key() 去重並保留第一筆，同時丟棄沒有名稱的紀錄。回傳保留的 entries 與丟棄筆數。
func Dedupe(entries []Entry) ([]Entry, int) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e = tidy(e)
		if e.Name == "" {
			continue
		}
		if _, ok := seen[e.Key()]; ok {
			continue
		}
		seen[e.Key()] = struct{}{}
		out = append(out, e)
	}
	return out, len(entries) - len(out)
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	i, ok := c.byName[norm(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// All 回傳註冊順序的複本。
func (c *Catalog) All() []Entry {
	return slices.Clone(c.entries)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Categories 回傳所有分類（去重、不分大小寫、排序）。
func (c *Catalog) Categories() []string {
	return c.distinct(func(e Entry) []string { return e.Categories })
}

func (c *Catalog) Platforms() []string {
	return c.distinct(func(e Entry) []string { return []string{e.Platform} })
}

func (c *Catalog) Regions() []string {
	return c.distinct(func(e Entry) []string { return []string{e.Region} })
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func (c *Catalog) distinct(field func(Entry) []string) []string {
	seen := map[string]string{}
	for _, e := range c.entries {
		for _, v := range field(e) {
			if v == "" {
				continue
			}
			if _, ok := seen[norm(v)]; !ok {
				seen[norm(v)] = v
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return norm(out[i]) < norm(out[j]) })
	return out
}

func tidy(e Entry) Entry {
	e.Name = strings.TrimSpace(e.Name)
	e.Platform = strings.TrimSpace(e.Platform)
	e.Region = strings.TrimSpace(e.Region)
	if len(e.Categories) > 0 {
		cats := make([]string, 0, len(e.Categories))
		for _, c := range e.Categories {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
		e.Categories = cats
	}
	return e
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
