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

package server

import (
	"context"
	"testing"
	"time"

	"github.com/zintix-labs/romlab/demo"
	"github.com/zintix-labs/romlab/server/netsvr"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

func TestRunContextStops(t *testing.T) {
	lab, err := demo.NewRomlab()
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	sCfg := &svrcfg.SvrCfg{Lab: lab, Addr: "127.0.0.1:0"}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := RunContext(ctx, sCfg, netsvr.NewChiServer(sCfg.Addr)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRequiresRomlab(t *testing.T) {
	if err := Run(&svrcfg.SvrCfg{}); err == nil {
		t.Fatalf("missing romlab must fail")
	}
	lab, err := demo.NewRomlab()
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if err := RunContext(context.Background(), &svrcfg.SvrCfg{Lab: lab}, nil); err == nil {
		t.Fatalf("nil svr must fail")
	}
}
