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

package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// StdOut 印出用時與摘要表格
func (r *CoverageReport) StdOut(used time.Duration) {
	fmt.Print(FormatDuration(used, r.Summary.Days))
	fmt.Print(r.Table())
}

// Table 回傳摘要表格
func (r *CoverageReport) Table() string {
	keys, msg := r.fmtSummary()
	return fmtTable("Daily Picks Coverage", keys, msg)
}

// FormatDuration 回傳用時與每秒處理天數
func FormatDuration(d time.Duration, days int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(days) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\ndps : %d days/sec\n", sec, dps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\ndps : %d days/sec\n", m, s, dps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\ndps : %d days/sec\n", h, m, s, dps)
}

func (r *CoverageReport) fmtSummary() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	basic := map[string]string{
		"Generator":       s.Generator,
		"Range":           fmt.Sprintf("%s ~ %s", s.From, s.To),
		"Days":            p.Sprintf("%d", s.Days),
		"Entries (n)":     p.Sprintf("%d", s.N),
		"Picks (k)":       p.Sprintf("%d / %d", s.Picks, s.K),
		"Expected":        p.Sprintf("%.2f", s.Expected),
		"Min / Max":       p.Sprintf("%d / %d", s.MinCount, s.MaxCount),
		"Ratio":           p.Sprintf("[%.3f, %.3f]", s.MinRatio, s.MaxRatio),
		"Mean / Std":      p.Sprintf("%.2f / %.2f", s.Mean, s.Std),
		"Chi-Square (df)": p.Sprintf("%.3f (%d)", s.ChiSquare, s.DF),
		"P-Value":         p.Sprintf("%.4f", s.PValue),
		"First P-Value":   p.Sprintf("%.4f", s.FirstPValue),
		"Changed Days":    p.Sprintf("%d (%.2f %%)", s.Changed, 100.0*s.ChangedRate),
	}
	keys := []string{"Generator", "Range", "Days", "Entries (n)", "Picks (k)", "Expected", "Min / Max", "Ratio", "Mean / Std", "Chi-Square (df)", "P-Value", "First P-Value", "Changed Days"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for _, k := range keys {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(msg[k]))
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	b.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		b.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) + " | " + v + blank(maxValLen-2-runewidth.StringWidth(v)) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
