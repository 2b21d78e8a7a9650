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
	"slices"
	"testing"

	"github.com/zintix-labs/romlab/errs"
)

func TestMulberry32KnownSequence(t *testing.T) {
	// seed = uint32(int32(-1922421040))，即 "2024-3-7" 的雜湊
	m := NewMulberry32(uint32(2372546256))
	want := []uint32{1933089811, 4030796976, 3871303236}
	for i, w := range want {
		if got := m.Uint32(); got != w {
			t.Fatalf("step %d: got %d want %d", i, got, w)
		}
	}

	z := NewMulberry32(0)
	for i, w := range []uint32{1144304738, 1416247, 958946056} {
		if got := z.Uint32(); got != w {
			t.Fatalf("seed 0 step %d: got %d want %d", i, got, w)
		}
	}
}

func TestFactoriesDeterminism(t *testing.T) {
	for _, f := range []PRNGFactory{Mulberry32Factory{}, PCG32Factory{}} {
		r1 := f.New(7)
		r2 := f.New(7)
		for i := 0; i < 16; i++ {
			if r1.Uint32() != r2.Uint32() {
				t.Fatalf("%s: Uint32 mismatch at %d", f.Name(), i)
			}
		}
		if r1.IntN(10) != r2.IntN(10) {
			t.Fatalf("%s: IntN mismatch", f.Name())
		}
		if r1.IntN(0) != -1 {
			t.Fatalf("%s: IntN(0) should be -1", f.Name())
		}
		for i := 0; i < 1000; i++ {
			v := r1.Float64()
			if v < 0 || v >= 1 {
				t.Fatalf("%s: Float64 out of range: %v", f.Name(), v)
			}
			if n := r1.IntN(13); n < 0 || n >= 13 {
				t.Fatalf("%s: IntN out of range: %d", f.Name(), n)
			}
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	for _, f := range []PRNGFactory{Mulberry32Factory{}, PCG32Factory{}} {
		r := f.New(42)
		r.Uint32()
		snap, err := r.Snapshot()
		if err != nil {
			t.Fatalf("%s: snapshot: %v", f.Name(), err)
		}
		want := []uint32{r.Uint32(), r.Uint32(), r.Uint32()}

		other := f.New(1)
		if err := other.Restore(snap); err != nil {
			t.Fatalf("%s: restore: %v", f.Name(), err)
		}
		for i, w := range want {
			if got := other.Uint32(); got != w {
				t.Fatalf("%s: restored step %d got %d want %d", f.Name(), i, got, w)
			}
		}
		if err := other.Restore([]byte{1, 2}); err == nil {
			t.Fatalf("%s: short snapshot should fail", f.Name())
		}
	}
}

func TestShuffleAndPerm(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6}
	Shuffle(NewMulberry32(9), src)
	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("shuffle changed elements: %v", src)
	}

	one := []string{"x"}
	Shuffle(NewMulberry32(9), one)
	if one[0] != "x" {
		t.Fatalf("single element shuffle changed value")
	}

	p1 := Perm(NewMulberry32(3), 8)
	p2 := Perm(NewMulberry32(3), 8)
	if !slices.Equal(p1, p2) {
		t.Fatalf("perm not deterministic: %v vs %v", p1, p2)
	}
	if len(Perm(NewMulberry32(3), 0)) != 0 {
		t.Fatalf("perm(0) should be empty")
	}
}

func TestFactoryByName(t *testing.T) {
	f, err := FactoryByName("")
	if err != nil || f.Name() != NameMulberry32 {
		t.Fatalf("empty name should give default, got %v %v", f, err)
	}
	f, err = FactoryByName(NamePCG32)
	if err != nil || f.Name() != NamePCG32 {
		t.Fatalf("pcg32 lookup failed: %v", err)
	}
	if _, err := FactoryByName("xorshift"); !errs.IsInvalidArgument(err) {
		t.Fatalf("unknown generator should be invalid argument, got %v", err)
	}
}
