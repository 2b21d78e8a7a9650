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

// Package demo 以內嵌的範例目錄組出可直接使用的 Romlab 與 server 設定。
package demo

import (
	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/demo/demo_catalog"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/server/logger"
	"github.com/zintix-labs/romlab/server/svrcfg"
)

// Entries 回傳內嵌範例目錄的 entries（已去重）。
func Entries() ([]catalog.Entry, error) {
	entries, err := catalog.LoadFS(demo_catalog.FS, demo_catalog.Name)
	if err != nil {
		return nil, err
	}
	entries, _ = catalog.Dedupe(entries)
	return entries, nil
}

// NewCatalog 回傳以範例目錄建立的凍結目錄。
func NewCatalog() (*catalog.Catalog, error) {
	entries, err := Entries()
	if err != nil {
		return nil, err
	}
	return catalog.NewWith(entries...)
}

func NewRomlab(opts ...romlab.Option) (*romlab.Romlab, error) {
	cat, err := NewCatalog()
	if err != nil {
		return nil, errs.Wrap(err, "load demo catalog")
	}
	return romlab.New(cat, opts...)
}

func NewServerConfig(addr string) (*svrcfg.SvrCfg, error) {
	log := logger.NewDefaultAsyncLogger(logger.ModeDev)
	lab, err := NewRomlab(romlab.WithLogger(log))
	if err != nil {
		return nil, errs.NewFatal("new romlab failed: " + err.Error())
	}
	return &svrcfg.SvrCfg{Log: log, Addr: addr, Lab: lab}, nil
}
