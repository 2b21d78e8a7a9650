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

package romlab

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/daily"
	"github.com/zintix-labs/romlab/errs"
)

func letters(t *testing.T) *catalog.Catalog {
	t.Helper()
	var es []catalog.Entry
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		es = append(es, catalog.Entry{Name: n, Categories: []string{"Arcade"}, Platform: "NES"})
	}
	cat, err := catalog.NewWith(es...)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func entryNames(es []catalog.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHotGolden(t *testing.T) {
	lab, err := New(letters(t), WithK(3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	d, _ := daily.NewDate(2024, time.March, 7)
	got, err := lab.Hot(d)
	if err != nil {
		t.Fatalf("hot: %v", err)
	}
	if !equal(entryNames(got), []string{"A", "B", "E"}) {
		t.Fatalf("unexpected picks: %v", entryNames(got))
	}
	if lab.K() != 3 || lab.Generator() != "mulberry32" {
		t.Fatalf("unexpected settings: k=%d gen=%s", lab.K(), lab.Generator())
	}
}

func TestHotTodayUsesLocation(t *testing.T) {
	// 2024-03-07 20:00 UTC 在台北已是 03-08
	instant := time.Date(2024, time.March, 7, 20, 0, 0, 0, time.UTC)
	taipei := time.FixedZone("CST", 8*3600)
	lab, err := New(letters(t), WithK(3), WithLocation(taipei), WithClock(func() time.Time { return instant }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, today, err := lab.HotToday()
	if err != nil {
		t.Fatalf("hot today: %v", err)
	}
	if today.Seed() != "2024-3-8" {
		t.Fatalf("unexpected today: %s", today.Seed())
	}
	if !equal(entryNames(got), []string{"B", "A", "D"}) {
		t.Fatalf("unexpected picks: %v", entryNames(got))
	}
}

func TestHotKAndAnnotated(t *testing.T) {
	lab, err := New(letters(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	d, _ := daily.NewDate(2024, time.March, 7)
	all, err := lab.Hot(d)
	if err != nil || !equal(entryNames(all), []string{"A", "B", "E", "D", "C"}) {
		t.Fatalf("k beyond n should be a full permutation: %v %v", entryNames(all), err)
	}
	none, err := lab.HotK(d, 0)
	if err != nil || len(none) != 0 {
		t.Fatalf("k=0 should be empty: %v %v", none, err)
	}
	if _, err := lab.HotK(d, -1); !errs.IsInvalidArgument(err) {
		t.Fatalf("negative k: %v", err)
	}
	ann, err := lab.AnnotatedK(d, 2)
	if err != nil {
		t.Fatalf("annotated: %v", err)
	}
	if !ann[0].Featured || ann[0].Rank != 1 || !ann[1].Featured || ann[1].Rank != 2 || ann[4].Featured {
		t.Fatalf("unexpected annotation: %+v", ann)
	}
	if _, err := lab.Hot(daily.Date{}); !errs.IsInvalidArgument(err) {
		t.Fatalf("zero date: %v", err)
	}
}

func TestSearchAndCoverage(t *testing.T) {
	lab, err := New(letters(t), WithK(2), WithGenerator("pcg32"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	page, err := lab.Search(catalog.Query{Text: "arcade"}, 2, 2)
	if err != nil || page.Total != 5 || page.Pages != 3 || !equal(entryNames(page.Items), []string{"C", "D"}) {
		t.Fatalf("unexpected page: %+v %v", page, err)
	}
	from, _ := daily.NewDate(2024, time.January, 1)
	rep, _, err := lab.Coverage(from, 100, false)
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if rep.Summary.N != 5 || rep.Summary.K != 2 || rep.Summary.Generator != "pcg32" {
		t.Fatalf("unexpected summary: %+v", rep.Summary)
	}
	sum := 0
	for _, c := range rep.Counts {
		sum += c
	}
	if sum != 200 {
		t.Fatalf("expected 200 picks, got %d", sum)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("nil catalog must fail")
	}
	if _, err := New(letters(t), WithK(-1)); !errs.IsInvalidArgument(err) {
		t.Fatalf("negative k: %v", err)
	}
	if _, err := New(letters(t), WithGenerator("xorshift")); err == nil {
		t.Fatalf("unknown generator must fail")
	}
	if _, err := New(letters(t), WithClock(nil)); err == nil {
		t.Fatalf("nil clock must fail")
	}
	cat := catalog.New()
	if _, err := New(cat); err != nil {
		t.Fatalf("empty catalog is allowed: %v", err)
	}
	if !cat.IsFrozen() {
		t.Fatalf("catalog must be frozen after New")
	}
}

const gamesJSON = `[
  {"name": "Metroid", "categories": ["Action"], "downloadLink": "m.zip", "platform": "NES"},
  {"name": "Tetris", "categories": ["Puzzle"], "downloadLink": "t.zip", "platform": "Game Boy"},
  {"name": "Metroid", "categories": ["Action"], "downloadLink": "m2.zip", "platform": "NES"}
]`

func TestLoadCatalogFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "games.json")
	if err := os.WriteFile(p, []byte(gamesJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadCatalog(context.Background(), Source{File: p})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Len() != 2 || !cat.IsFrozen() {
		t.Fatalf("expected 2 deduped entries in a frozen catalog, got %d", cat.Len())
	}
}

func TestLoadCatalogFallback(t *testing.T) {
	fsys := fstest.MapFS{"games.json": {Data: []byte(gamesJSON)}}
	cat, err := LoadCatalog(context.Background(), Source{Fallback: fsys, FallbackName: "games.json"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cat.GetByName("tetris"); !ok {
		t.Fatalf("fallback catalog missing Tetris")
	}
	if _, err := LoadCatalog(context.Background(), Source{}); err == nil {
		t.Fatalf("empty source must fail")
	}
}
