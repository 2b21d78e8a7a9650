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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/config"
	"github.com/zintix-labs/romlab/demo/demo_catalog"
	"github.com/zintix-labs/romlab/server"
	"github.com/zintix-labs/romlab/server/logger"
	"github.com/zintix-labs/romlab/server/netsvr"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

// svr 是精簡的伺服器入口：只吃旗標與 ROMLAB_ 環境變數，適合容器部署。
// 需要子命令與報表時用 cmd/romlab。
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		path = flag.String("config", os.Getenv("ROMLAB_CONFIG"), "YAML config file")
		addr = flag.String("addr", "", "listen address (overrides config)")
		mode = flag.String("log-mode", "", "log mode: dev|prod|silence (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *mode != "" {
		cfg.LogMode = *mode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, ah := logger.NewAsync(8192, cfg.Mode())
	defer ah.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := romlab.LoadCatalog(ctx, cfg.Source(demo_catalog.FS, demo_catalog.Name, log))
	if err != nil {
		return err
	}
	opts, err := cfg.Options(log)
	if err != nil {
		return err
	}
	lab, err := romlab.New(cat, opts...)
	if err != nil {
		return err
	}
	sCfg := &svrcfg.SvrCfg{Log: log, Addr: cfg.Addr, Lab: lab}
	return server.RunContext(ctx, sCfg, netsvr.NewChiServer(cfg.Addr))
}
