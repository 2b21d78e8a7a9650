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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/api"
	"github.com/zintix-labs/romlab/server/app"
	"github.com/zintix-labs/romlab/server/netsvr"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

// Run 是 server 套件的組裝器與啟動入口。
//
// 它負責：
//  1. 驗證 SvrCfg（logger、Romlab 必須可用）。
//  2. 依 SvrCfg.Addr 建立 chi HTTP server。
//  3. 註冊 /healthz 與 /v1 路由。
//  4. 啟動 app.Run() 直到收到訊號或 server 出錯。
//
// Run 不讀檔也不讀環境變數；設定來源交給 config 套件與 cmd。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能不可用，直接寫 stderr
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	svr := netsvr.NewChiServer(sCfg.Addr)
	return RunWithSvr(sCfg, svr)
}

// RunWithSvr 與 Run 相同，但允許注入自訂的 NetSvr（自己的 listener、timeout 或既有 router）。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return RunContext(ctx, sCfg, svr)
}

// RunContext 執行到 ctx 結束或 server 出錯為止；訊號處理交給呼叫端。
func RunContext(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes", slog.Any("err", err))
		return err
	}

	a := app.NewWith(svr)
	sCfg.Log.Info("[romlab] listening",
		slog.String("addr", svr.Address()),
		slog.Int("games", sCfg.Lab.Catalog().Len()),
		slog.Int("k", sCfg.Lab.K()),
	)
	if err := a.RunContext(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
