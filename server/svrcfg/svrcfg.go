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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/logger"
	"github.com/zintix-labs/romlab/server/metrics"
)

// MaxCoverageDays 限制 /v1/coverage 單次掃描天數，避免一個請求佔住 CPU。
const MaxCoverageDays = 3660

type SvrCfg struct {
	Log  *slog.Logger
	Addr string
	Lab  *romlab.Romlab
	// CoverageDays 為 /v1/coverage 的天數上限；0 代表 MaxCoverageDays。
	CoverageDays int
	// Metrics 為 nil 時於 Valid 建立一份新的。
	Metrics *metrics.Metrics
}

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeSilence)
	}
	if sc.CoverageDays <= 0 || sc.CoverageDays > MaxCoverageDays {
		sc.CoverageDays = MaxCoverageDays
	}
	if sc.Lab == nil {
		return errs.NewFatal("romlab is required")
	}
	if sc.Metrics == nil {
		sc.Metrics = metrics.New()
	}
	sc.Metrics.SetCatalogSize(sc.Lab.Catalog().Len())
	return nil
}
