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

	"github.com/zintix-labs/romlab/catalog"
	"github.com/zintix-labs/romlab/dto"
)

type searchCmd struct {
	Query    string `arg:"" optional:"" help:"Text matched against names and categories."`
	Category string `help:"Exact category (case-insensitive)."`
	Platform string `help:"Exact platform (case-insensitive)."`
	Region   string `help:"Exact region (case-insensitive)."`
	Fuzzy    bool   `short:"f" help:"Fuzzy-match names and rank by distance."`
	Page     int    `default:"1" help:"Page number, starting at 1."`
	Size     int    `default:"24" help:"Page size."`
	JSON     bool   `help:"Print JSON."`
}

func (c *searchCmd) Run(ctx context.Context, g *Globals) error {
	lab, _, err := g.open(ctx, nil)
	if err != nil {
		return err
	}
	q := catalog.Query{
		Text:     c.Query,
		Category: c.Category,
		Platform: c.Platform,
		Region:   c.Region,
		Fuzzy:    c.Fuzzy,
	}
	page, err := lab.Search(q, c.Page, c.Size)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(g.out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.GamesResponse{Query: q, Page: page})
	}
	for _, e := range page.Items {
		fmt.Fprintln(g.out, line(e))
	}
	fmt.Fprintf(g.out, "-- page %d/%d, %d match(es)\n", page.Page, max(page.Pages, 1), page.Total)
	return nil
}
