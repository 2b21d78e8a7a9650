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

package main

import (
	"context"

	"github.com/zintix-labs/romlab/server"
	"github.com/zintix-labs/romlab/server/logger"
	"github.com/zintix-labs/romlab/server/netsvr"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

type serveCmd struct {
	Addr         string `help:"Listen address (default: config addr)."`
	CoverageDays int    `default:"0" help:"Upper bound of days for /v1/coverage (default: 3660)."`
}

func (c *serveCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	log, ah := logger.NewAsync(8192, cfg.Mode())
	defer ah.Close()

	lab, _, err := g.open(ctx, log)
	if err != nil {
		return err
	}
	addr := cfg.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	sCfg := &svrcfg.SvrCfg{Log: log, Addr: addr, Lab: lab, CoverageDays: c.CoverageDays}
	return server.RunContext(ctx, sCfg, netsvr.NewChiServer(addr))
}
