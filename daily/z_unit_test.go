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

package daily

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/core"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("G%d", i)
	}
	return out
}

func TestSeedHash(t *testing.T) {
	cases := map[string]int32{
		"":         0,
		"hello":    99162322,
		"2024-3-7": -1922421040,
		"2024-3-8": -1922421039,
	}
	for in, want := range cases {
		if got := SeedHash(in); got != want {
			t.Fatalf("SeedHash(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSelectGolden(t *testing.T) {
	entries := []string{"A", "B", "C", "D", "E"}
	cases := []struct {
		date string
		k    int
		want []string
	}{
		{"2024-03-07", 3, []string{"A", "B", "E"}},
		{"2024-3-7", 5, []string{"A", "B", "E", "D", "C"}},
		{"2024-03-08", 3, []string{"B", "A", "D"}},
		{"2024-12-31", 3, []string{"C", "D", "B"}},
		{"2025-01-01", 3, []string{"D", "E", "A"}},
	}
	for _, c := range cases {
		got, err := Select(entries, mustDate(t, c.date), c.k)
		if err != nil {
			t.Fatalf("%s: %v", c.date, err)
		}
		if !slices.Equal(got, c.want) {
			t.Fatalf("%s k=%d: got %v want %v", c.date, c.k, got, c.want)
		}
	}

	got, err := Select(names(20), mustDate(t, "2024-03-07"), DefaultK)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"G2", "G3", "G8", "G12", "G18", "G14", "G5", "G13", "G11", "G0", "G4", "G1"}
	if !slices.Equal(got, want) {
		t.Fatalf("20 entries: got %v want %v", got, want)
	}
}

func TestSelectDeterministicAndPure(t *testing.T) {
	entries := names(40)
	orig := slices.Clone(entries)
	d := mustDate(t, "2025-06-15")

	a, err := Select(entries, d, 12)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Select(entries, d, 12)
	if !slices.Equal(a, b) {
		t.Fatalf("same day differs: %v vs %v", a, b)
	}
	if !slices.Equal(entries, orig) {
		t.Fatalf("input was mutated")
	}

	// 同一天不同時刻、不同時區的同一個日曆日
	morning := FromTime(time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC))
	night := FromTime(time.Date(2025, 6, 15, 23, 59, 59, 0, time.FixedZone("UTC+9", 9*3600)))
	c, _ := Select(entries, morning, 12)
	e, _ := Select(entries, night, 12)
	if !slices.Equal(a, c) || !slices.Equal(a, e) {
		t.Fatalf("time of day should not matter")
	}
}

func TestSelectEdgeCases(t *testing.T) {
	d := mustDate(t, "2024-03-07")

	got, err := Select([]string{}, d, 12)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty entries: got %v %v", got, err)
	}
	got, err = Select[string](nil, d, 12)
	if err != nil || len(got) != 0 {
		t.Fatalf("nil entries: got %v %v", got, err)
	}
	got, err = Select(names(10), d, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("k=0: got %v %v", got, err)
	}

	all := names(7)
	got, err = Select(all, d, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(all) {
		t.Fatalf("k > n should return all, got %d", len(got))
	}
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	want := slices.Clone(all)
	slices.Sort(want)
	if !slices.Equal(sorted, want) {
		t.Fatalf("not a permutation: %v", got)
	}
}

func TestSelectInvalidArgument(t *testing.T) {
	if _, err := Select(names(3), mustDate(t, "2024-03-07"), -1); !errs.IsInvalidArgument(err) {
		t.Fatalf("negative k: want invalid argument, got %v", err)
	}
	if _, err := Select(names(3), Date{}, 3); !errs.IsInvalidArgument(err) {
		t.Fatalf("zero date: want invalid argument, got %v", err)
	}
	if _, err := Select([]string{}, Date{Year: 2024, Month: 2, Day: 30}, 3); !errs.IsInvalidArgument(err) {
		t.Fatalf("feb 30 on empty catalog: want invalid argument, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2024-3-7")
	if d != (Date{2024, time.March, 7}) {
		t.Fatalf("got %+v", d)
	}
	if d.Seed() != "2024-3-7" || d.String() != "2024-03-07" {
		t.Fatalf("seed/string: %q %q", d.Seed(), d.String())
	}
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Fatalf("leap day rejected: %v", err)
	}
	for _, bad := range []string{"", "2024", "2024-13-01", "2023-02-29", "2024-04-31", "x-1-1", "2024-+3-7", "0-1-1", "10000-1-1"} {
		if _, err := ParseDate(bad); !errs.IsInvalidArgument(err) {
			t.Fatalf("ParseDate(%q): want invalid argument, got %v", bad, err)
		}
	}
}

func TestAddDays(t *testing.T) {
	d := mustDate(t, "2024-02-28")
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("got %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Fatalf("got %s", got)
	}
	if got := mustDate(t, "2025-01-01").AddDays(-1).String(); got != "2024-12-31" {
		t.Fatalf("got %s", got)
	}
}

func TestAnnotate(t *testing.T) {
	entries := []string{"A", "B", "C", "D", "E"}
	sel := Selector{K: 3}
	out, err := Annotate(sel, entries, mustDate(t, "2024-03-07"))
	if err != nil {
		t.Fatal(err)
	}
	// 精選為 [A B E]
	wantRank := map[string]int{"A": 1, "B": 2, "E": 3}
	for i, f := range out {
		if f.Entry != entries[i] {
			t.Fatalf("order changed at %d", i)
		}
		if r, ok := wantRank[f.Entry]; ok {
			if !f.Featured || f.Rank != r {
				t.Fatalf("%s: want featured rank %d, got %+v", f.Entry, r, f)
			}
		} else if f.Featured || f.Rank != 0 {
			t.Fatalf("%s should not be featured: %+v", f.Entry, f)
		}
	}
}

func TestSelectorDefaults(t *testing.T) {
	var s Selector
	idx, err := s.Indices(30, mustDate(t, "2024-03-07"))
	if err != nil {
		t.Fatal(err)
	}
	if len(idx) != DefaultK {
		t.Fatalf("zero selector should pick %d, got %d", DefaultK, len(idx))
	}

	if _, err := NewSelector(-2, ""); !errs.IsInvalidArgument(err) {
		t.Fatalf("negative k should fail")
	}
	p, err := NewSelector(4, core.NamePCG32)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Pick(p, names(10), mustDate(t, "2024-03-07"))
	if err != nil || len(got) != 4 {
		t.Fatalf("pcg32 pick: %v %v", got, err)
	}
	again, _ := Pick(p, names(10), mustDate(t, "2024-03-07"))
	if !slices.Equal(got, again) {
		t.Fatalf("pcg32 selector not deterministic")
	}
}

func TestCoverageOverAYear(t *testing.T) {
	const n, k, days = 20, 12, 365
	count := make([]int, n)
	first := make([]int, n)
	changed := 0
	var prev []int

	d := mustDate(t, "2024-01-01")
	var s Selector
	for i := 0; i < days; i++ {
		idx, err := s.Indices(n, d)
		if err != nil {
			t.Fatal(err)
		}
		for _, j := range idx {
			count[j]++
		}
		first[idx[0]]++
		if prev != nil && !slices.Equal(prev, idx) {
			changed++
		}
		prev = idx
		d = d.AddDays(1)
	}

	expected := float64(days*k) / float64(n)
	for i, c := range count {
		if float64(c) < expected*0.8 || float64(c) > expected*1.2 {
			t.Fatalf("entry %d selected %d times, expected about %.1f", i, c, expected)
		}
		if first[i] < 5 || first[i] > 40 {
			t.Fatalf("entry %d ranked first %d times, expected about %.1f", i, first[i], float64(days)/n)
		}
	}
	if changed < days-5 {
		t.Fatalf("only %d of %d consecutive days changed", changed, days-1)
	}
}
