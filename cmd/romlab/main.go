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

// romlab 是每日精選與目錄查詢的命令列工具。
//
//	romlab hot --date 2024-03-07 --k 3
//	romlab search mario --platform n64
//	romlab coverage --days 365 --n 20 --format yaml
//	romlab serve --addr :8087
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "romlab:", err)
		cancel()
		os.Exit(1)
	}
}

// run 解析 args 並執行對應子命令，輸出寫到 stdout。
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cli := &CLI{}
	cli.out = stdout
	parser, err := kong.New(cli,
		kong.Name("romlab"),
		kong.Description("Daily hot picks and search over a ROM catalog"),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
		kong.ConfigureHelp(kong.HelpOptions{Tree: true}),
		kong.Writers(stdout, stdout),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run()
}
