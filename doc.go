// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

/*
Package csif validates and renders CSIF (Cheatsheet Interchange Format)
documents: JSON files holding a titled list of sections, each a list of
items with an example and a description.

The package focuses on deterministic markdown output: every section becomes
a two-column table, and text is escaped so that MDX based site generators
render it literally.

Render one document file:

	md, err := csif.RenderFile("git.csif.json")
	if err != nil {
		return err
	}

	fmt.Print(md)

Collect documents below a directory and validate them with the embedded
schema:

	files, err := csif.Collect("cheatsheets")
	if err != nil {
		return err
	}

	validator, err := csif.CompileSchema(csif.EmbeddedSchema())
	if err != nil {
		return err
	}

	for _, path := range files {
		doc, err := csif.LoadFile(path)
		if err != nil {
			return err
		}

		for _, issue := range validator.Check(doc) {
			fmt.Printf("%s: %s\n", path, issue)
		}
	}

Prefer a project schema found in schema/v1/csif.schema.json of the working
directory or one of its parents:

	src, err := csif.LocateSchema(csif.SchemaOptions{SearchFrom: "."})
	if err != nil {
		return err
	}

	validator, err := csif.CompileSchema(src)
*/
package csif
