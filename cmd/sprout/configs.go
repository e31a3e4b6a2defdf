package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sprout-format/sprout/encode"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/parse"
	"github.com/sprout-format/sprout/render"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	SubstTag  string `cli:"name=s aliases=subst desc='substitution tag (default =)'"`
	NestedTag string `cli:"name=n aliases=nested desc='nested key tag (default =)'"`
	Sep       string `cli:"name=k aliases=sep desc='key separator (default .)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) renderOpts(env map[string]any) []render.Option {
	var opts []render.Option
	if cfg.SubstTag != "" {
		opts = append(opts, render.SubstitutionTag(cfg.SubstTag))
	}
	if cfg.NestedTag != "" {
		opts = append(opts, render.NestedKeyTag(cfg.NestedTag))
	}
	if cfg.Sep != "" {
		opts = append(opts, render.KeySeparator(cfg.Sep))
	}
	if len(env) > 0 {
		opts = append(opts, render.TemplateEnv(env))
	}
	return opts
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.Colors(true)}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []encode.EncodeOption{encode.Colors(true)}
	}
	return nil
}

type RenderConfig struct {
	*MainConfig
	Env map[string]any

	PatchFile string `cli:"name=p aliases=patch desc='merge patch file applied before rendering'"`

	Render *cli.Command
}

// loadPatch reads the merge patch document named by -p, if any.
func (cfg *RenderConfig) loadPatch() (*ir.Node, error) {
	if cfg.PatchFile == "" {
		return nil, nil
	}
	d, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return nil, fmt.Errorf("could not read patch %q: %w", cfg.PatchFile, err)
	}
	node, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch %q: %w", cfg.PatchFile, err)
	}
	return node, nil
}

type DiffConfig struct {
	*MainConfig
	Env map[string]any

	Diff *cli.Command
}

func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
