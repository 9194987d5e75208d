package main

// web utils module
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"io"
	"os"

	"github.com/gomarkdown/markdown"
	mhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	lru "github.com/hashicorp/golang-lru/v2"
)

// mdCache keeps rendered markdown pages, static files never change
// within server lifetime
var mdCache, _ = lru.New[string, string](32)

// helper function to parse given markdown file and return HTML content
func mdToHTML(fname string) (string, error) {
	if content, ok := mdCache.Get(fname); ok {
		return content, nil
	}
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()
	var md []byte
	md, err = io.ReadAll(file)
	if err != nil {
		return "", err
	}

	// create markdown parser with extensions
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(md)

	// create HTML renderer with extensions
	htmlFlags := mhtml.CommonFlags | mhtml.HrefTargetBlank
	opts := mhtml.RendererOptions{Flags: htmlFlags}
	renderer := mhtml.NewRenderer(opts)
	content := markdown.Render(doc, renderer)
	mdCache.Add(fname, string(content))
	return string(content), nil
}
