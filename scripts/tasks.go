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
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
)

var (
	okLine   = color.New(color.FgGreen).PrintlnFunc()
	failLine = color.New(color.FgRed).PrintlnFunc()
)

func runTest(verbose bool) error {
	color.Green("running tests")
	clean := exec.Command("go", "clean", "-testcache")
	if err := clean.Run(); err != nil {
		color.Red("go clean -testcache: %v", err)
	}

	args := []string{"test", "./...", "-count=1"}
	if verbose {
		args = append(args, "-v")
	} else {
		args = append(args, "-cover")
	}
	cmd := exec.Command("go", args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	// 編譯錯誤在 stderr，合併後才看得到
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		switch classify(line, verbose) {
		case "ok":
			okLine(line)
		case "fail":
			failLine(line)
		case "plain":
			fmt.Println(line)
		}
	}
	if err := cmd.Wait(); err != nil {
		return errors.New("tests finished with errors")
	}
	return nil
}

func runCoverage(extra []string) error {
	args := append([]string{"run", "./cmd/romlab", "coverage", "--days", "365", "--progress"}, extra...)
	return passthrough("go", args...)
}

func runServe(extra []string) error {
	args := append([]string{"run", "./cmd/romlab", "serve"}, extra...)
	return passthrough("go", args...)
}

func passthrough(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}
