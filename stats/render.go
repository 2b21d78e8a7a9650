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

package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// CoverageRender 定義報告輸出行為
type CoverageRender interface {
	Write(w io.Writer, r *CoverageReport) error
}

// Json渲染
type JsonCoverageRender struct{}

func (jr *JsonCoverageRender) Write(w io.Writer, r *CoverageReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML渲染
type YAMLCoverageRender struct{}

func (yr *YAMLCoverageRender) Write(w io.Writer, r *CoverageReport) error {
	// 最內層的一維陣列輸出成 flow style：[..., ...]，外層維度維持展開
	return forceReadableList(w, r)
}

// 表格渲染（與 StdOut 相同內容）
type TableCoverageRender struct{}

func (tr *TableCoverageRender) Write(w io.Writer, r *CoverageReport) error {
	_, err := io.WriteString(w, r.Table())
	return err
}

// RenderByName 依名稱取得渲染器：table | json | yaml，其他回傳 nil。
func RenderByName(name string) CoverageRender {
	switch name {
	case "", "table":
		return &TableCoverageRender{}
	case "json":
		return &JsonCoverageRender{}
	case "yaml", "yml":
		return &YAMLCoverageRender{}
	default:
		return nil
	}
}

func (r *CoverageReport) WriteWith(w io.Writer, rep CoverageRender) error {
	return rep.Write(w, r)
}

func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

// styleReadableSequences 自頂向下調整 sequence node：
// 不含子 sequence 的（最內層）設為 flow style，其餘維持 block。
func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
			}
			styleReadableSequences(c)
		}
		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
	}
}
