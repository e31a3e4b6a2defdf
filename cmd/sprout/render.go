package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sprout-format/sprout/encode"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/parse"
	"github.com/sprout-format/sprout/patch"
	"github.com/sprout-format/sprout/render"

	"github.com/scott-cotton/cli"
)

func renderDocs(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	p, err := cfg.loadPatch()
	if err != nil {
		return err
	}
	opts := cfg.renderOpts(cfg.Env)
	if len(args) == 0 {
		return renderReader(cfg, cc.Out, os.Stdin, p, opts)
	}
	return renderFiles(cfg, cc.Out, args, p, opts)
}

func renderFiles(cfg *RenderConfig, w io.Writer, files []string, p *ir.Node, opts []render.Option) error {
	for i, file := range files {
		if err := renderFile(cfg, w, file, p, opts); err != nil {
			return err
		}
		if i < len(files)-1 {
			w.Write([]byte("\n---\n"))
		}
	}
	return nil
}

func renderFile(cfg *RenderConfig, w io.Writer, file string, p *ir.Node, opts []render.Option) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	if err := renderReader(cfg, w, f, p, opts); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func renderReader(cfg *RenderConfig, w io.Writer, r io.Reader, p *ir.Node, opts []render.Option) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	docs := bytes.Split(in, []byte("\n---\n"))
	n := len(docs)
	for i, doc := range docs {
		node, err := parse.Parse(doc)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if p != nil {
			node, err = patch.Merge(node, p)
			if err != nil {
				return fmt.Errorf("error patching document %d: %w", i, err)
			}
		}
		node, err = render.Render(node, opts...)
		if err != nil {
			return fmt.Errorf("error rendering document %d: %w", i, err)
		}
		if err := encode.Encode(node, w, cfg.MainConfig.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if i < n-1 {
			_, err = w.Write([]byte("\n---\n"))
			if err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}
