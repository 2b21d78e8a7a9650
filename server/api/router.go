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

package api

import (
	"log/slog"
	"net/http"

	v1 "github.com/zintix-labs/romlab/server/api/v1"
	"github.com/zintix-labs/romlab/server/httperr"
	"github.com/zintix-labs/romlab/server/metrics"
	"github.com/zintix-labs/romlab/server/netsvr"
	"github.com/zintix-labs/romlab/server/netsvr/middleware"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、/healthz 與 /v1 路由。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	if sCfg != nil && sCfg.Lab != nil && sCfg.Metrics == nil {
		sCfg.Metrics = metrics.New()
		sCfg.Metrics.SetCatalogSize(sCfg.Lab.Catalog().Len())
	}
	h, err := v1.NewHandler(sCfg)
	if err != nil {
		return err
	}
	m := sCfg.Metrics
	registerMiddleware(svr, sCfg.Log, m)
	svr.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperr.WriteStatus(w, r, http.StatusNotFound, "route not found: "+r.URL.Path)
	})
	svr.Get("/healthz", h.Health)
	svr.Get("/metrics", m.Handler().ServeHTTP)
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/hot", h.Hot)
		vOne.Get("/games", h.Games)
		vOne.Get("/games/{name}", h.Game)
		vOne.Get("/categories", h.Facets)
		vOne.Get("/coverage", h.Coverage)
	})
	return nil
}

// 順序：request id 最外層，access log 才拿得到 id；recover 包在壓縮外，panic 回應不會被壓縮一半。
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger, m *metrics.Metrics) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(m.Middleware)
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}
