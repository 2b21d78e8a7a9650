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

// Package dto 定義 HTTP 邊界的請求解析與回應結構。
package dto

import (
	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/daily"
)

// HotResponse 為 /v1/hot 的回應。Annotated 只在 annotate=1 時填入整個目錄。
type HotResponse struct {
	Date      daily.Date                      `json:"date"`
	Seed      string                          `json:"seed"`
	K         int                             `json:"k"`
	Generator string                          `json:"generator"`
	Games     []catalog.Entry                 `json:"games"`
	Annotated []daily.Featured[catalog.Entry] `json:"annotated,omitempty"`
}

type GamesResponse struct {
	Query catalog.Query `json:"query"`
	catalog.Page[catalog.Entry]
}

type FacetsResponse struct {
	Categories []string `json:"categories"`
	Platforms  []string `json:"platforms"`
	Regions    []string `json:"regions"`
}

type HealthResponse struct {
	Status    string     `json:"status"`
	Games     int        `json:"games"`
	K         int        `json:"k"`
	Generator string     `json:"generator"`
	Today     daily.Date `json:"today"`
}
