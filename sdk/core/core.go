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

// Package core 提供可重現（reproducible）的亂數來源與其上的取樣工具。
//
// 這裡的所有 PRNG 都是「顯式狀態物件」：狀態只存在於實例內，沒有任何全域亂數源，
// 因此同一個 seed 永遠得到同一條序列，且不同 goroutine 各自持有實例即可並行使用。
package core

import "github.com/zintix-labs/romlab/errs"

// PRNG 定義 core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// Float64 的精度由 PRNG 自己決定；本包內建的兩個實作都是 32-bit 輸出除以 2^32。
type RAND interface {
	// Uint32 回傳下一個 32-bit 輸出。
	Uint32() uint32
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// IntN 回傳 [0,n) 的 int 亂數，若 n <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以 32-bit seed 建立 PRNG。
//
// 合約：在同一個實作與同一個版本下，New(seed) 必須是決定性的。
// 每日精選的 seed 來自日期字串雜湊（int32），所以 seed 寬度固定為 32-bit。
type PRNGFactory interface {
	New(seed uint32) PRNG
	Name() string
}

const (
	NameMulberry32 = "mulberry32"
	NamePCG32      = "pcg32"
)

// Mulberry32Factory 是預設工廠，輸出與參考實作逐位元一致。
type Mulberry32Factory struct{}

func (Mulberry32Factory) New(seed uint32) PRNG { return NewMulberry32(seed) }
func (Mulberry32Factory) Name() string         { return NameMulberry32 }

// PCG32Factory 提供另一個分佈良好的產生器，用於不需要與參考實作對齊的部署。
type PCG32Factory struct{}

func (PCG32Factory) New(seed uint32) PRNG { return NewPCG32(seed) }
func (PCG32Factory) Name() string         { return NamePCG32 }

func Default() PRNGFactory {
	return Mulberry32Factory{}
}

// FactoryByName 依名稱取得工廠；空字串回傳 Default()。
func FactoryByName(name string) (PRNGFactory, error) {
	switch name {
	case "", NameMulberry32:
		return Mulberry32Factory{}, nil
	case NamePCG32:
		return PCG32Factory{}, nil
	default:
		return nil, errs.InvalidArgf("unknown generator: %q (want %s|%s)", name, NameMulberry32, NamePCG32)
	}
}

// Shuffle 以 Fisher-Yates (Knuth Shuffle) 對 src 就地重排。
//
// 由後往前掃描，每一步取 j = floor(Float64() * (i+1)) 並交換 i、j。
// 索引取法刻意使用 Float64 而非 IntN，才能與參考實作得到相同的排列。
func Shuffle[T any](r RAND, src []T) {
	if len(src) <= 1 {
		return
	}
	for i := len(src) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		src[i], src[j] = src[j], src[i]
	}
}

// Perm 回傳 [0,n) 經 Shuffle 後的排列；n <= 0 回傳空切片。
func Perm(r RAND, n int) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(r, p)
	return p
}
