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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/dto"
)

type hotCmd struct {
	Date     string `short:"d" help:"Calendar date YYYY-MM-DD (default: today in the configured timezone)."`
	K        *int   `short:"k" help:"Number of picks (default: config k)."`
	Annotate bool   `short:"a" help:"List the whole catalog and mark the picks."`
	JSON     bool   `help:"Print JSON."`
}

func (c *hotCmd) Run(ctx context.Context, g *Globals) error {
	lab, _, err := g.open(ctx, nil)
	if err != nil {
		return err
	}
	date, err := dateOr(c.Date, lab.Today())
	if err != nil {
		return err
	}
	k := lab.K()
	if c.K != nil {
		k = *c.K
	}
	games, err := lab.HotK(date, k)
	if err != nil {
		return err
	}
	resp := dto.HotResponse{Date: date, Seed: date.Seed(), K: k, Generator: lab.Generator(), Games: games}
	if c.Annotate {
		if resp.Annotated, err = lab.AnnotatedK(date, k); err != nil {
			return err
		}
	}
	if c.JSON {
		enc := json.NewEncoder(g.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(g.out, "Hot picks for %s (seed %s, %s)\n", date, resp.Seed, resp.Generator)
	if c.Annotate {
		for _, f := range resp.Annotated {
			mark := "  "
			if f.Featured {
				mark = fmt.Sprintf("%2d", f.Rank)
			}
			fmt.Fprintf(g.out, "%s  %s\n", mark, line(f.Entry))
		}
		return nil
	}
	for i, e := range games {
		fmt.Fprintf(g.out, "%2d. %s\n", i+1, line(e))
	}
	return nil
}

// line 以一行呈現一筆遊戲：名稱 [平台/地區] 分類。
func line(e catalog.Entry) string {
	var b strings.Builder
	b.WriteString(e.Name)
	tags := make([]string, 0, 2)
	if e.Platform != "" {
		tags = append(tags, e.Platform)
	}
	if e.Region != "" {
		tags = append(tags, e.Region)
	}
	if len(tags) > 0 {
		b.WriteString(" [" + strings.Join(tags, "/") + "]")
	}
	if len(e.Categories) > 0 {
		b.WriteString(" " + strings.Join(e.Categories, ", "))
	}
	return b.String()
}
