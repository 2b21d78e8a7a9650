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

// Package httperr 是 HTTP 邊界層的錯誤映射：errs 分級 → status code → JSON 錯誤本文。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/netsvr/middleware"
)

// Body 是所有錯誤回應的 JSON 形狀。
type Body struct {
	Error string `json:"error"`
	ReqID string `json:"req_id,omitempty"`
}

// StatusCode 將錯誤映射成 HTTP status code：
//   - ctx 逾時 → 504，ctx 取消 → 408
//   - errs.Warn → 400
//   - 其他 → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	if errs.LevelOf(err) == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Write 寫出 JSON 錯誤。5xx 不回傳內部訊息。
func Write(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	msg := err.Error()
	if status >= 500 {
		msg = http.StatusText(status)
	}
	WriteStatus(w, r, status, msg)
}

// WriteStatus 以指定 status 寫出 JSON 錯誤，用於沒有 error 值的情境（例如 404）。
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Error: msg, ReqID: middleware.ReqID(r)})
}

// Log 只記錄值得關注的錯誤：408/504 為 warn，5xx 為 error，400 不記。
func Log(log *slog.Logger, r *http.Request, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	attrs := []slog.Attr{slog.Any("err", err), slog.String("req_id", middleware.ReqID(r))}
	switch status := StatusCode(err); {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		log.LogAttrs(r.Context(), slog.LevelWarn, msg, attrs...)
	case status >= 500:
		log.LogAttrs(r.Context(), slog.LevelError, msg, attrs...)
	}
}
