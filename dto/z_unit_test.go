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

package dto

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/romlab/errs"
)

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestDecodeHotRequest(t *testing.T) {
	req, err := DecodeHotRequest(get("/v1/hot?date=2024-3-7&k=3&annotate=1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Date == nil || req.Date.Seed() != "2024-3-7" {
		t.Fatalf("unexpected date: %+v", req.Date)
	}
	if req.K == nil || *req.K != 3 || !req.Annotate {
		t.Fatalf("unexpected request: %+v", req)
	}

	req, err = DecodeHotRequest(get("/v1/hot"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Date != nil || req.K != nil || req.Annotate {
		t.Fatalf("expected empty request, got %+v", req)
	}

	req, err = DecodeHotRequest(get("/v1/hot?k=0"))
	if err != nil || req.K == nil || *req.K != 0 {
		t.Fatalf("k=0 must be accepted: %+v %v", req, err)
	}
}

func TestDecodeHotRequestInvalid(t *testing.T) {
	for _, target := range []string{
		"/v1/hot?date=2024-2-30",
		"/v1/hot?date=yesterday",
		"/v1/hot?k=-1",
		"/v1/hot?k=abc",
		"/v1/hot?k=1000",
		"/v1/hot?annotate=maybe",
	} {
		if _, err := DecodeHotRequest(get(target)); !errs.IsInvalidArgument(err) {
			t.Fatalf("%s: expected invalid argument, got %v", target, err)
		}
	}
	if _, err := DecodeHotRequest(nil); errs.LevelOf(err) != errs.Warn {
		t.Fatalf("nil request should be a warn error, got %v", err)
	}
}

func TestDecodeGamesRequest(t *testing.T) {
	req, err := DecodeGamesRequest(get("/v1/games?q=+mario+&category=Racing&platform=N64&region=USA&fuzzy=true&page=2&size=5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := req.Query
	if q.Text != "mario" || q.Category != "Racing" || q.Platform != "N64" || q.Region != "USA" || !q.Fuzzy {
		t.Fatalf("unexpected query: %+v", q)
	}
	if req.Page != 2 || req.Size != 5 {
		t.Fatalf("unexpected paging: %+v", req)
	}

	req, err = DecodeGamesRequest(get("/v1/games"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page != 1 || req.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", req)
	}

	for _, target := range []string{"/v1/games?page=0", "/v1/games?size=0", "/v1/games?size=101", "/v1/games?fuzzy=x"} {
		if _, err := DecodeGamesRequest(get(target)); !errs.IsInvalidArgument(err) {
			t.Fatalf("%s: expected invalid argument, got %v", target, err)
		}
	}
}

func TestDecodeCoverageRequest(t *testing.T) {
	req, err := DecodeCoverageRequest(get("/v1/coverage?from=2024-01-01&days=30&n=20&k=12"), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.From == nil || req.From.String() != "2024-01-01" || req.Days != 30 || req.N != 20 || req.K != 12 {
		t.Fatalf("unexpected request: %+v", req)
	}

	req, err = DecodeCoverageRequest(get("/v1/coverage"), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.From != nil || req.Days != 100 || req.N != 0 || req.K != 0 {
		t.Fatalf("unexpected defaults: %+v", req)
	}

	if _, err := DecodeCoverageRequest(get("/v1/coverage?days=101"), 100); !errs.IsInvalidArgument(err) {
		t.Fatalf("days over limit must be rejected, got %v", err)
	}
	if _, err := DecodeCoverageRequest(get(fmt.Sprintf("/v1/coverage?n=%d", MaxCoverageN+1)), 100); !errs.IsInvalidArgument(err) {
		t.Fatalf("n over limit must be rejected, got %v", err)
	}
	if req, err := DecodeCoverageRequest(get(fmt.Sprintf("/v1/coverage?n=%d", MaxCoverageN)), 100); err != nil || req.N != MaxCoverageN {
		t.Fatalf("n at limit: req=%+v err=%v", req, err)
	}
}
