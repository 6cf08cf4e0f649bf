// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif_test

import (
	"fmt"
	"strings"

	"github.com/woozymasta/csif"
)

func ExampleRender() {
	doc, err := csif.ParseDocument([]byte(`{
  "title": "Shell",
  "sections": [
    {
      "title": "Pipes",
      "items": [
        {"title": "count", "example": "ls | wc -l", "description": "Count <entries>"}
      ]
    }
  ]
}`), "shell.csif.json")
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, line := range strings.Split(csif.Render(doc), "\n") {
		fmt.Printf("%q\n", line)
	}
	// Output:
	// "# Shell"
	// ""
	// ""
	// "## Pipes"
	// ""
	// "| Example | Description |"
	// "| --- | --- |"
	// "| <pre>ls \\| wc -l</pre> | Count &lt;entries&gt; |"
	// ""
}

func ExampleValidator_Check() {
	validator, err := csif.CompileSchema(csif.EmbeddedSchema())
	if err != nil {
		fmt.Println(err)
		return
	}

	doc, err := csif.ParseDocument([]byte(`{"title":"Shell","sections":[{"title":"Pipes"}]}`), "shell.csif.json")
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, issue := range validator.Check(doc) {
		fmt.Println(issue.Location())
	}
	// Output:
	// /sections/0
}

func ExampleEscapeMarkdown() {
	fmt.Println(csif.EscapeMarkdown("map[string]{T}|<nil>\nnext"))
	// Output:
	// map[string]&#123;T&#125;\|&lt;nil&gt;<br/>next
}
