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

// ops 是開發用的任務入口：go run ./scripts <task>
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

type task struct {
	help string
	run  func(args []string) error
}

var tasks = map[string]task{
	"test":        {"go test ./... -cover -count=1, only ok/FAIL lines", func([]string) error { return runTest(false) }},
	"test-detail": {"go test ./... -v -count=1 without [no test files]", func([]string) error { return runTest(true) }},
	"coverage":    {"one-year coverage sweep of the daily picks (extra args go to romlab coverage)", runCoverage},
	"serve":       {"run the API with the embedded demo catalog", runServe},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		color.Yellow("unknown task: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err := t.run(os.Args[2:]); err != nil {
		color.Red("%s: %v", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("Usage: go run ./scripts <task>")
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].help)
	}
}

// classify 決定 go test 輸出的一行要怎麼印；回傳空字串代表略過。
func classify(line string, verbose bool) string {
	switch {
	case strings.HasPrefix(line, "ok"):
		return "ok"
	case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
		return "fail"
	case strings.Contains(line, "[no test files]"):
		return ""
	case verbose:
		return "plain"
	}
	return ""
}
