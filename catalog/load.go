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

package catalog

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/zintix-labs/romlab/errs"
	"gopkg.in/yaml.v3"
)

// document 允許目錄檔以 {"games": [...]} 包一層。
type document struct {
	Games []Entry `json:"games" yaml:"games"`
}

// Decode 依副檔名（.json / .yaml / .yml）解析目錄內容。
//
// 支援兩種外形：頂層陣列 [...]，或 {"games": [...]}。
func Decode(name string, raw []byte) ([]Entry, error) {
	if err := validFileName(name); err != nil {
		return nil, err
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return decodeJSON(raw)
	default:
		return decodeYAML(raw)
	}
}

func decodeJSON(raw []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errs.NewWarn("empty catalog document")
	}
	if trimmed[0] == '[' {
		var out []Entry
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, errs.WrapWithExtra(err, "decode catalog json", "top-level array")
		}
		return out, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errs.WrapWithExtra(err, "decode catalog json", "games object")
	}
	return doc.Games, nil
}

func decodeYAML(raw []byte) ([]Entry, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, errs.Wrap(err, "decode catalog yaml")
	}
	if len(node.Content) == 0 {
		return nil, errs.NewWarn("empty catalog document")
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var out []Entry
		if err := root.Decode(&out); err != nil {
			return nil, errs.WrapWithExtra(err, "decode catalog yaml", "top-level sequence")
		}
		return out, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, errs.WrapWithExtra(err, "decode catalog yaml", "games mapping")
	}
	return doc.Games, nil
}

// LoadFS 從 fs.FS 讀取並解析目錄檔。可搭配 go:embed 或 os.DirFS。
func LoadFS(fsys fs.FS, name string) ([]Entry, error) {
	if fsys == nil {
		return nil, errs.NewFatal("catalog fs is nil")
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "read catalog file", name)
	}
	return Decode(name, raw)
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewWarn("empty catalog filename")
	}
	base := path.Base(file)
	if strings.HasPrefix(base, ".") {
		return errs.Warnf("invalid catalog filename: %q (cannot start with '.')", file)
	}
	lower := strings.ToLower(base)
	if !(strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")) {
		return errs.Warnf("invalid catalog filename: %q (must end with .yaml, .yml, or .json)", file)
	}
	return nil
}
