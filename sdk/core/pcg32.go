package core

import (
	"encoding/binary"
	"math/bits"

	"github.com/zintix-labs/romlab/errs"
)

const pcg32Multiplier = 6364136223846793005

// PCG32 為 64-bit 狀態、32-bit 輸出的 PCG (XSH RR) 產生器。
// 方法集合對齊 Mulberry32，便於透過 PRNGFactory 互換。
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 依 PCG 建議的初始化流程建立產生器：
// 先以 stream 推進一次，再加上 seed，最後再推進一次。
func NewPCG32(seed uint32) *PCG32 {
	r := &PCG32{state: 0, inc: (1 << 1) | 1}
	r.Uint32()
	r.state += uint64(seed)
	r.Uint32()
	return r
}

func (r *PCG32) Uint32() uint32 {
	old := r.state
	r.state = old*pcg32Multiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

// Float64 回傳 [0,1) 的浮點亂數（32-bit 精度）。
func (r *PCG32) Float64() float64 {
	return float64(r.Uint32()) * floatUnit32
}

// IntN 以拒絕取樣回傳無偏的 [0,n)；n <= 0 回傳 -1。
func (r *PCG32) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	bound := uint32(n)
	if uint64(n) > uint64(^uint32(0)) {
		bound = ^uint32(0)
	}
	threshold := -bound % bound
	for {
		v := r.Uint32()
		if v >= threshold {
			return int(v % bound)
		}
	}
}

func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 16)
	b = binary.BigEndian.AppendUint64(b, r.state)
	b = binary.BigEndian.AppendUint64(b, r.inc)
	return b, nil
}

func (r *PCG32) Restore(data []byte) error {
	if len(data) != 16 {
		return errs.Warnf("pcg32 snapshot must be 16 bytes, got %d", len(data))
	}
	inc := binary.BigEndian.Uint64(data[8:])
	if inc&1 == 0 {
		return errs.NewWarn("pcg32 snapshot has even increment")
	}
	r.state = binary.BigEndian.Uint64(data[:8])
	r.inc = inc
	return nil
}
