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

// Package stats 驗證每日精選的統計性質：
// 在連續多天、固定目錄下，每筆 entry 被選中的次數應接近 days*k/n，
// 且排名第一的位置也不應偏向特定 entry。
package stats

import (
	"context"
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/romlab/daily"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/core"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	MaxSweepEntries = 100000
	MaxSweepDays    = 36500
)

// SweepConfig 描述一次覆蓋率掃描。
type SweepConfig struct {
	N            int              // 目錄大小
	K            int              // 每日精選數量
	From         daily.Date       // 起始日
	Days         int              // 連續天數
	Factory      core.PRNGFactory // nil 取 core.Default()
	ShowProgress bool             // 是否顯示進度條
	Progress     io.Writer        // 進度條輸出；nil 取 pb 預設（stderr）
}

// CoverageReport 覆蓋率報告
type CoverageReport struct {
	Summary   *CoverageSummary `json:"Summary" yaml:"Summary"`
	Counts    []int            `json:"Counts" yaml:"Counts"`       // 每筆 entry 被選中的天數
	FirstRank []int            `json:"FirstRank" yaml:"FirstRank"` // 每筆 entry 排名第一的天數
	Positions [][]int          `json:"Positions" yaml:"Positions"` // [排名][entry] 次數
}

type CoverageSummary struct {
	Generator   string  `json:"Generator" yaml:"Generator"`
	N           int     `json:"N" yaml:"N"`
	K           int     `json:"K" yaml:"K"`
	Picks       int     `json:"Picks" yaml:"Picks"` // min(K, N)
	From        string  `json:"From" yaml:"From"`
	To          string  `json:"To" yaml:"To"`
	Days        int     `json:"Days" yaml:"Days"`
	Expected    float64 `json:"Expected" yaml:"Expected"` // days*picks/n
	MinCount    int     `json:"MinCount" yaml:"MinCount"`
	MaxCount    int     `json:"MaxCount" yaml:"MaxCount"`
	MinRatio    float64 `json:"MinRatio" yaml:"MinRatio"` // MinCount/Expected
	MaxRatio    float64 `json:"MaxRatio" yaml:"MaxRatio"`
	Mean        float64 `json:"Mean" yaml:"Mean"`
	Std         float64 `json:"Std" yaml:"Std"`
	ChiSquare   float64 `json:"ChiSquare" yaml:"ChiSquare"`
	DF          int     `json:"DF" yaml:"DF"`
	PValue      float64 `json:"PValue" yaml:"PValue"`
	FirstChiSq  float64 `json:"FirstChiSq" yaml:"FirstChiSq"`
	FirstPValue float64 `json:"FirstPValue" yaml:"FirstPValue"`
	Changed     int     `json:"Changed" yaml:"Changed"`         // 與前一天結果不同的天數
	ChangedRate float64 `json:"ChangedRate" yaml:"ChangedRate"` // Changed / (Days-1)
}

// Sweep 逐日執行每日精選並統計，回傳報告與用時。
func Sweep(cfg SweepConfig) (*CoverageReport, time.Duration, error) {
	return SweepContext(context.Background(), cfg)
}

// SweepContext 同 Sweep，每天開始前檢查 ctx，取消或逾時即中止。
func SweepContext(ctx context.Context, cfg SweepConfig) (*CoverageReport, time.Duration, error) {
	if err := cfg.valid(); err != nil {
		return nil, 0, err
	}
	f := cfg.Factory
	if f == nil {
		f = core.Default()
	}
	sel := daily.Selector{K: cfg.K, Factory: f}
	picks := min(cfg.K, cfg.N)

	rep := &CoverageReport{
		Counts:    make([]int, cfg.N),
		FirstRank: make([]int, cfg.N),
		Positions: make([][]int, picks),
	}
	for i := range rep.Positions {
		rep.Positions[i] = make([]int, cfg.N)
	}

	bar := pb.New(cfg.Days)
	switch {
	case !cfg.ShowProgress:
		bar.SetWriter(io.Discard)
	case cfg.Progress != nil:
		bar.SetWriter(cfg.Progress)
	}
	bar.Start()

	changed := 0
	prev := make([]int, 0, picks)
	d := cfg.From
	for day := 0; day < cfg.Days; day++ {
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return nil, 0, errs.WrapWithExtra(err, "coverage sweep aborted", d.String())
		}
		idx, err := sel.Indices(cfg.N, d)
		if err != nil {
			bar.Finish()
			return nil, 0, errs.WrapWithExtra(err, "coverage sweep", d.String())
		}
		for pos, j := range idx {
			rep.Counts[j]++
			rep.Positions[pos][j]++
		}
		rep.FirstRank[idx[0]]++
		if day > 0 && !sameOrder(prev, idx) {
			changed++
		}
		prev = append(prev[:0], idx...)
		d = d.AddDays(1)
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	rep.Summary = summarize(cfg, f.Name(), picks, rep, changed)
	return rep, used, nil
}

// WithinBand 回報所有 entry 的次數是否落在 Expected*(1±tol) 內。
func (r *CoverageReport) WithinBand(tol float64) bool {
	s := r.Summary
	return s.MinRatio >= 1-tol && s.MaxRatio <= 1+tol
}

// Uniform 以卡方檢定判斷（選中次數與排名第一兩者）是否都無法在 alpha 下拒絕均勻假設。
func (r *CoverageReport) Uniform(alpha float64) bool {
	return r.Summary.PValue >= alpha && r.Summary.FirstPValue >= alpha
}

func (cfg SweepConfig) valid() error {
	if cfg.N < 1 || cfg.N > MaxSweepEntries {
		return errs.InvalidArgf("n must be in [1,%d], got %d", MaxSweepEntries, cfg.N)
	}
	if cfg.K < 1 {
		return errs.InvalidArgf("k must be >= 1, got %d", cfg.K)
	}
	if cfg.Days < 1 || cfg.Days > MaxSweepDays {
		return errs.InvalidArgf("days must be in [1,%d], got %d", MaxSweepDays, cfg.Days)
	}
	return cfg.From.Valid()
}

func summarize(cfg SweepConfig, gen string, picks int, rep *CoverageReport, changed int) *CoverageSummary {
	s := &CoverageSummary{
		Generator: gen,
		N:         cfg.N,
		K:         cfg.K,
		Picks:     picks,
		From:      cfg.From.String(),
		To:        cfg.From.AddDays(cfg.Days - 1).String(),
		Days:      cfg.Days,
		Expected:  float64(cfg.Days*picks) / float64(cfg.N),
		DF:        cfg.N - 1,
		Changed:   changed,
	}
	if cfg.Days > 1 {
		s.ChangedRate = float64(changed) / float64(cfg.Days-1)
	}

	counts := make([]float64, cfg.N)
	s.MinCount, s.MaxCount = rep.Counts[0], rep.Counts[0]
	for i, c := range rep.Counts {
		counts[i] = float64(c)
		s.MinCount = min(s.MinCount, c)
		s.MaxCount = max(s.MaxCount, c)
	}
	s.Mean, s.Std = stat.MeanStdDev(counts, nil)
	if s.Expected > 0 {
		s.MinRatio = float64(s.MinCount) / s.Expected
		s.MaxRatio = float64(s.MaxCount) / s.Expected
	}

	s.ChiSquare, s.PValue = chiSquare(rep.Counts, s.Expected)
	s.FirstChiSq, s.FirstPValue = chiSquare(rep.FirstRank, float64(cfg.Days)/float64(cfg.N))
	return s
}

// chiSquare 對「每格期望值相同」的計數做卡方適合度檢定。
// 只有一格時自由度為 0，檢定無意義，p 值視為 1。
func chiSquare(obs []int, expected float64) (float64, float64) {
	if len(obs) < 2 || expected <= 0 {
		return 0, 1
	}
	chi := 0.0
	for _, o := range obs {
		diff := float64(o) - expected
		chi += diff * diff / expected
	}
	dist := distuv.ChiSquared{K: float64(len(obs) - 1)}
	return chi, dist.Survival(chi)
}

func sameOrder(a, b []int) bool {
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
