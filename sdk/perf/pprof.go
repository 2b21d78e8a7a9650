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

// Package perf 以 runtime/pprof 包住一段工作並寫出 profile 檔。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/romlab/errs"
)

// DefaultDir 為 profile 預設輸出目錄。
const DefaultDir = "build/profiling"

const (
	ModeNone   = ""
	ModeCPU    = "cpu"
	ModeHeap   = "heap"
	ModeAllocs = "allocs"
)

// Modes 列出支援的模式，給 CLI 的 enum 使用。
var Modes = []string{ModeNone, ModeCPU, ModeHeap, ModeAllocs}

// Run 依 mode 對 exe 做 profiling，回傳寫出的檔案路徑（ModeNone 時為空字串）。
//
// exe 的錯誤優先回傳；profile 寫檔失敗為 Fatal。
func Run(dir, mode string, exe func() error) (string, error) {
	if exe == nil {
		return "", errs.NewFatal("nil exe")
	}
	if mode == ModeNone {
		return "", exe()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(err, "create profiling dir")
	}
	path := filepath.Join(dir, mode+".pprof")
	switch mode {
	case ModeCPU:
		return path, cpu(path, exe)
	case ModeHeap, ModeAllocs:
		if err := exe(); err != nil {
			return "", err
		}
		return path, snapshot(path, mode)
	}
	return "", errs.InvalidArgf("unknown pprof mode %q", mode)
}

// cpu 在 exe 執行期間收集 CPU profile，也可作為 PGO 的輸入。
func cpu(path string, exe func() error) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create cpu profile")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// snapshot 在 exe 後寫出 heap（in-use）或 allocs（累積配置）。
func snapshot(path, name string) error {
	if name == ModeHeap {
		// 讓快照貼近最新的存活物件
		runtime.GC()
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create "+name+" profile")
	}
	defer f.Close()
	prof := pprof.Lookup(name)
	if prof == nil {
		return errs.Fatalf("profile %q not found", name)
	}
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+name+" profile")
	}
	return nil
}
