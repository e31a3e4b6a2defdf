package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sprout-format/sprout/encode"
	"github.com/sprout-format/sprout/parse"
	"github.com/sprout-format/sprout/render"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.renderOpts(cfg.Env)
	if len(args) == 0 {
		return diffReader(cfg, cc.Out, os.Stdin, opts)
	}
	for i, file := range args {
		if err := diffFile(cfg, cc.Out, file, opts); err != nil {
			return err
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("\n---\n"))
		}
	}
	return nil
}

func diffFile(cfg *DiffConfig, w io.Writer, file string, opts []render.Option) error {
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
	if err := diffReader(cfg, w, f, opts); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func diffReader(cfg *DiffConfig, w io.Writer, r io.Reader, opts []render.Option) error {
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
		before := bytes.NewBuffer(nil)
		if err := encode.Encode(node, before); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
		res, err := render.Render(node, opts...)
		if err != nil {
			return fmt.Errorf("error rendering document %d: %w", i, err)
		}
		after := bytes.NewBuffer(nil)
		if err := encode.Encode(res, after); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if err := writeDiff(cfg, w, before.String(), after.String()); err != nil {
			return err
		}
		if i < n-1 {
			if _, err := w.Write([]byte("\n---\n")); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}

func writeDiff(cfg *DiffConfig, w io.Writer, before, after string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	useColor := cfg.Color
	if f, ok := w.(*os.File); ok && !useColor {
		useColor = isatty.IsTerminal(f.Fd())
	}
	if useColor {
		ins := color.New(color.FgGreen)
		ins.EnableColor()
		del := color.New(color.FgRed, color.CrossedOut)
		del.EnableColor()
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				ins.Fprint(w, d.Text)
			case diffmatchpatch.DiffDelete:
				del.Fprint(w, d.Text)
			default:
				fmt.Fprint(w, d.Text)
			}
		}
		return nil
	}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(w, "{+%s+}", d.Text)
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(w, "[-%s-]", d.Text)
		default:
			fmt.Fprint(w, d.Text)
		}
	}
	return nil
}
