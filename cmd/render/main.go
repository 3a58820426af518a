// Command render generates a PDF from a markdown file using the stock
// letterhead style. Intended for previewing document markup during template
// development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/docsmith/docgen"
	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/geom"
	"github.com/docsmith/docgen/templates"
)

type options struct {
	inPath  string
	outPath string
	a4      bool
	title   string
	bizName string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/render [flags] <markdown file>\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.outPath, "o", "out.pdf", "output path")
	flag.BoolVar(&opts.a4, "a4", false, "use A4 instead of Letter")
	flag.StringVar(&opts.title, "title", "", "document title")
	flag.StringVar(&opts.bizName, "business", "Preview", "letterhead business name")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		return opts, fmt.Errorf("expected exactly one input file")
	}
	opts.inPath = flag.Arg(0)
	return opts, nil
}

func run(opts options) error {
	source, err := os.ReadFile(opts.inPath)
	if err != nil {
		return err
	}

	cfg := docgen.Config{
		Business: templates.BusinessInfo{Name: opts.bizName},
	}
	if opts.a4 {
		cfg.PageSize = geom.A4
	}
	engine := docgen.New(cfg)

	res, err := engine.Render(context.Background(), docgen.Request{
		Kind:     doc.KindMarkdownReport,
		Info:     doc.Info{Title: opts.title, CreationDate: time.Now().UTC()},
		Markdown: string(source),
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outPath, res.PDF, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d pages, %d bytes)\n", opts.outPath, res.PageCount, len(res.PDF))
	return nil
}
