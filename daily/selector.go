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

// Package daily 實作「每日精選（daily hot picks）」：
// 給定一份目錄與一個日曆日，決定性地選出固定數量、經亂序排列的子集合。
//
// 同一天的所有呼叫得到完全相同的結果（相同元素、相同順序），隔天則換一批。
// 流程：
//  1. Date.Seed() 產生日期字串，例如 "2024-3-7"。
//  2. SeedHash 以 hash = hash*31 + codepoint 的 int32 溢位運算得到雜湊。
//  3. 以 uint32(hash) 為種子建立 PRNG（預設 Mulberry32）。
//  4. 對索引做 Fisher-Yates，取前 k 個。
//
// 本包所有函數都是純函數，可安全並行呼叫。
package daily

import (
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/core"
)

// DefaultK 是每日精選的預設數量。
const DefaultK = 12

// SeedHash 以 32-bit 有號溢位計算 hash = hash*31 + codepoint(c)。
// 與 (hash << 5) - hash + c 在代數上等價。
func SeedHash(seed string) int32 {
	var h int32
	for _, c := range seed {
		h = h*31 + int32(c)
	}
	return h
}

// Selector 保存每日精選的可調參數。零值可用：K 為 0 時取 DefaultK，Factory 為 nil 時取 core.Default()。
//
// 若需要 k = 0，請直接呼叫 Select / SelectWith。
type Selector struct {
	K       int
	Factory core.PRNGFactory
}

// NewSelector 以 k 與產生器名稱建立 Selector。
func NewSelector(k int, generator string) (Selector, error) {
	if k < 0 {
		return Selector{}, errs.InvalidArgf("k must be >= 0, got %d", k)
	}
	f, err := core.FactoryByName(generator)
	if err != nil {
		return Selector{}, err
	}
	if k == 0 {
		k = DefaultK
	}
	return Selector{K: k, Factory: f}, nil
}

func (s Selector) k() int {
	if s.K == 0 {
		return DefaultK
	}
	return s.K
}

func (s Selector) factory() core.PRNGFactory {
	if s.Factory == nil {
		return core.Default()
	}
	return s.Factory
}

// Indices 回傳 [0,n) 中被選中的索引，依精選排名排序。
func (s Selector) Indices(n int, date Date) ([]int, error) {
	return indices(s.factory(), n, date, s.k())
}

// Select 以預設產生器從 entries 中選出 min(k, len(entries)) 筆。
//
// entries 不會被修改；回傳的是新切片。
func Select[T any](entries []T, date Date, k int) ([]T, error) {
	return SelectWith(core.Default(), entries, date, k)
}

// SelectWith 與 Select 相同，但使用指定的 PRNG 工廠。
func SelectWith[T any](f core.PRNGFactory, entries []T, date Date, k int) ([]T, error) {
	idx, err := indices(f, len(entries), date, k)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out, nil
}

// Pick 使用 s 的設定做每日精選。
func Pick[T any](s Selector, entries []T, date Date) ([]T, error) {
	return SelectWith(s.factory(), entries, date, s.k())
}

// Featured 是帶有精選標記的包裝值。
//
// Rank 從 1 開始；未入選者 Featured=false、Rank=0。原始資料不會被改動。
type Featured[T any] struct {
	Entry    T    `json:"entry"`
	Featured bool `json:"featured"`
	Rank     int  `json:"rank,omitempty"`
}

// Annotate 依原順序回傳所有 entries，並標出當日精選與其排名。
func Annotate[T any](s Selector, entries []T, date Date) ([]Featured[T], error) {
	return AnnotateWith(s.factory(), entries, date, s.k())
}

// AnnotateWith 與 Annotate 相同，但直接指定 PRNG 工廠與 k（允許 0）。
func AnnotateWith[T any](f core.PRNGFactory, entries []T, date Date, k int) ([]Featured[T], error) {
	idx, err := indices(f, len(entries), date, k)
	if err != nil {
		return nil, err
	}
	out := make([]Featured[T], len(entries))
	for i, e := range entries {
		out[i].Entry = e
	}
	for rank, j := range idx {
		out[j].Featured = true
		out[j].Rank = rank + 1
	}
	return out, nil
}

func indices(f core.PRNGFactory, n int, date Date, k int) ([]int, error) {
	if k < 0 {
		return nil, errs.InvalidArgf("k must be >= 0, got %d", k)
	}
	if err := date.Valid(); err != nil {
		return nil, err
	}
	if f == nil {
		f = core.Default()
	}
	k = min(k, n)
	if k == 0 {
		return []int{}, nil
	}
	r := f.New(uint32(SeedHash(date.Seed())))
	return core.Perm(r, n)[:k], nil
}
