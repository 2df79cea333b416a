// Copyright 2025 Interview Assistant Project
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

package mermaid

import (
	"fmt"
	"strings"
)

// styledInitDirective is the fixed directive block used for styled presets.
// The renderer only accepts the documented keys, so this text must not be
// edited casually.
const styledInitDirective = `%%{init: {"theme": "base", "themeVariables": {"fontFamily": "Inter, Segoe UI, sans-serif", "fontSize": "14px", "lineColor": "#94a3b8", "primaryColor": "#e2e8f0", "primaryTextColor": "#1e293b", "primaryBorderColor": "#64748b"}, "flowchart": {"curve": "basis", "nodeSpacing": 40, "rankSpacing": 50}}}%%`

// styledClassDefs colors the common node roles. Appended once per diagram.
const styledClassDefs = `classDef clientNode fill:#dbeafe,stroke:#2563eb,color:#1e3a8a
classDef serviceNode fill:#dcfce7,stroke:#16a34a,color:#14532d
classDef storageNode fill:#fef3c7,stroke:#d97706,color:#78350f
classDef queueNode fill:#fae8ff,stroke:#a21caf,color:#701a75`

// injectStyle applies the styling step. A non-default style preset prepends
// the full directive block and appends the class definitions; otherwise a
// non-default theme gets the minimal theme directive. Sources that already
// start with an init directive keep it.
func injectStyle(src string, opts Options) string {
	preset := strings.ToLower(strings.TrimSpace(opts.StylePreset))
	theme := strings.TrimSpace(opts.Theme)

	if preset != "" && preset != "default" {
		if !strings.HasPrefix(strings.TrimSpace(src), "%%{init") {
			src = styledInitDirective + "\n" + src
		}
		if !strings.Contains(src, "classDef clientNode") {
			src = strings.TrimRight(src, "\n") + "\n" + styledClassDefs
		}
		return src
	}

	if theme != "" && theme != "default" && !strings.HasPrefix(strings.TrimSpace(src), "%%{init") {
		src = fmt.Sprintf("%%%%{init: { 'theme': '%s' } }%%%%\n", theme) + src
	}
	return src
}
