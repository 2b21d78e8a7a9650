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

// Package v1 實作 /v1 底下的 JSON API。
package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/dto"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/httperr"
	"github.com/zintix-labs/romlab/server/metrics"
	"github.com/zintix-labs/romlab/server/svrcfg"
	"github.com/zintix-labs/romlab/stats"
	"golang.org/x/sync/singleflight"
)

// ============================================================
// ** Handler **
// ============================================================

type Handler struct {
	lab     *romlab.Romlab
	log     *slog.Logger
	maxDays int
	metrics *metrics.Metrics
	// sweeps 合併參數相同且同時進行的 coverage 掃描。
	sweeps singleflight.Group
}

func NewHandler(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("romlab is required")
	}
	log := sCfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{lab: sCfg.Lab, log: log, maxDays: sCfg.CoverageDays, metrics: sCfg.Metrics}, nil
}

// Health GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, dto.HealthResponse{
		Status:    "ok",
		Games:     h.lab.Catalog().Len(),
		K:         h.lab.K(),
		Generator: h.lab.Generator(),
		Today:     h.lab.Today(),
	})
}

// Hot GET /v1/hot?date=&k=&annotate=
func (h *Handler) Hot(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeHotRequest(r)
	if err != nil {
		h.fail(w, r, "hot", err)
		return
	}
	date := h.lab.Today()
	if req.Date != nil {
		date = *req.Date
	}
	k := h.lab.K()
	if req.K != nil {
		k = *req.K
	}

	games, err := h.lab.HotK(date, k)
	if err != nil {
		h.fail(w, r, "hot", err)
		return
	}
	resp := dto.HotResponse{
		Date:      date,
		Seed:      date.Seed(),
		K:         k,
		Generator: h.lab.Generator(),
		Games:     games,
	}
	if req.Annotate {
		if resp.Annotated, err = h.lab.AnnotatedK(date, k); err != nil {
			h.fail(w, r, "hot", err)
			return
		}
	}
	h.ok(w, r, resp)
}

// Games GET /v1/games?q=&category=&platform=&region=&fuzzy=&page=&size=
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeGamesRequest(r)
	if err != nil {
		h.fail(w, r, "games", err)
		return
	}
	page, err := h.lab.Search(req.Query, req.Page, req.Size)
	if err != nil {
		h.fail(w, r, "games", err)
		return
	}
	h.ok(w, r, dto.GamesResponse{Query: req.Query, Page: page})
}

// Game GET /v1/games/{name}
func (h *Handler) Game(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	e, ok := h.lab.Catalog().GetByName(name)
	if !ok {
		httperr.WriteStatus(w, r, http.StatusNotFound, "game not found: "+name)
		return
	}
	h.ok(w, r, e)
}

// Facets GET /v1/categories
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	cat := h.lab.Catalog()
	h.ok(w, r, dto.FacetsResponse{
		Categories: cat.Categories(),
		Platforms:  cat.Platforms(),
		Regions:    cat.Regions(),
	})
}

// Coverage GET /v1/coverage?from=&days=&n=&k=
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeCoverageRequest(r, h.maxDays)
	if err != nil {
		h.fail(w, r, "coverage", err)
		return
	}
	from := h.lab.Today()
	if req.From != nil {
		from = *req.From
	}
	cfg := stats.SweepConfig{
		N:    req.N,
		K:    req.K,
		From: from,
		Days: req.Days,
	}
	key := fmt.Sprintf("%s/%d/%d/%d", from, req.Days, req.N, req.K)
	v, err, shared := h.sweeps.Do(key, func() (any, error) {
		return h.sweep(r.Context(), cfg)
	})
	// 共用的掃描跟著發起者的請求被取消時，仍在等待的請求自己重跑一次。
	if shared && isCtxErr(err) && r.Context().Err() == nil {
		v, err = h.sweep(r.Context(), cfg)
	}
	if err != nil {
		h.fail(w, r, "coverage", err)
		return
	}
	rep := v.(*stats.CoverageReport)
	if shared {
		h.log.Debug("coverage.shared", slog.String("key", key))
	}
	h.ok(w, r, rep)
}

func (h *Handler) sweep(ctx context.Context, cfg stats.SweepConfig) (*stats.CoverageReport, error) {
	rep, used, err := h.lab.CoverageContext(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.ObserveSweep(cfg.Days)
	}
	h.log.Debug("coverage", slog.String("from", cfg.From.String()), slog.Int("days", cfg.Days), slog.Duration("used", used))
	return rep, nil
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ============================================================
// ** 回應 **
// ============================================================

// ok 先完整編碼再寫出，避免寫到一半才發現編碼錯誤。
func (h *Handler) ok(w http.ResponseWriter, r *http.Request, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		h.fail(w, r, "encode", errs.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	httperr.Log(h.log, r, op, err)
	httperr.Write(w, r, err)
}
