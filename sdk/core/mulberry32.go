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

package core

import (
	"encoding/binary"

	"github.com/zintix-labs/romlab/errs"
)

const (
	mulberryIncrement uint32 = 0x6D2B79F5
	floatUnit32              = 1.0 / (1 << 32)
)

// Mulberry32 是單一 uint32 狀態的產生器。
//
// 每次呼叫：state += 0x6D2B79F5，再經兩輪 xorshift 與奇數乘法混合輸出。
// 所有運算都在 uint32 上進行，溢位即截斷。
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

func (m *Mulberry32) Uint32() uint32 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 回傳 [0,1) 的浮點亂數（32-bit 精度）。
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) * floatUnit32
}

// IntN 回傳 floor(Float64()*n)；n <= 0 回傳 -1。
func (m *Mulberry32) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	return int(m.Float64() * float64(n))
}

func (m *Mulberry32) Snapshot() ([]byte, error) {
	return binary.BigEndian.AppendUint32(make([]byte, 0, 4), m.state), nil
}

func (m *Mulberry32) Restore(data []byte) error {
	if len(data) != 4 {
		return errs.Warnf("mulberry32 snapshot must be 4 bytes, got %d", len(data))
	}
	m.state = binary.BigEndian.Uint32(data)
	return nil
}
