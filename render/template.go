package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sprout-format/sprout/debug"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/keypath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// templater bridges template strings to the expression engine. It owns no
// state beyond its collaborators and performs no caching; memoization
// happens one layer up, keyed by the path being rendered.
type templater struct {
	cfg *config
	res *resolver
}

// render expands every $[expr] island in tmpl. Text outside islands
// passes through verbatim. Within an island, \] and \\ escape; an island
// with no closing ] is literal text.
func (t *templater) render(tmpl string, ctx keypath.Path) (string, error) {
	if len(tmpl) < 3 {
		return tmpl, nil
	}
	exprStart := -1
	i := 0
	n := len(tmpl)
	var outBuf []byte
	var keyBuf []byte

	for i < n-1 {
		c, next := tmpl[i], tmpl[i+1]
		i++
		switch c {
		case '$':
			if next == '[' {
				exprStart = i - 1
				keyBuf = keyBuf[:0]
				i++
				continue
			}
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		case '\\':
			if exprStart != -1 {
				keyBuf = append(keyBuf, next)
				i++
				continue
			}
			outBuf = append(outBuf, c)
		case ']':
			if exprStart != -1 {
				rendered, err := t.evalIsland(strings.TrimSpace(string(keyBuf)), ctx)
				if err != nil {
					return "", err
				}
				outBuf = append(outBuf, rendered...)
				exprStart = -1
				continue
			}
			outBuf = append(outBuf, c)
		default:
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		}
	}

	if exprStart == -1 {
		outBuf = append(outBuf, tmpl[n-1])
		return string(outBuf), nil
	}

	// still inside an island: it closes at end of string or is literal
	if i >= n || tmpl[n-1] != ']' {
		outBuf = append(outBuf, tmpl[exprStart:n]...)
		return string(outBuf), nil
	}
	rendered, err := t.evalIsland(strings.TrimSpace(string(keyBuf)), ctx)
	if err != nil {
		return "", err
	}
	outBuf = append(outBuf, rendered...)
	return string(outBuf), nil
}

// evalIsland compiles and runs one island expression. Identifiers are
// pre-resolved through the scope resolver relative to ctx, so templates
// see sibling and ancestor values as plain variables.
func (t *templater) evalIsland(src string, ctx keypath.Path) (string, error) {
	if src == "" {
		return "", nil
	}
	env := make(map[string]any, len(t.cfg.env)+4)
	for k, v := range t.cfg.env {
		env[k] = v
	}
	idents, err := identifiers(src)
	if err != nil {
		return "", fmt.Errorf("error parsing template expression %q: %w", src, err)
	}
	for _, id := range idents {
		if _, bound := env[id]; bound {
			continue
		}
		if t.isFunc(id) {
			continue
		}
		node, ok, err := t.res.resolve(id, ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			env[id] = nil
			continue
		}
		env[id] = ir.ToAny(node)
	}
	prg, err := expr.Compile(src, t.exprOpts(ctx)...)
	if err != nil {
		return "", fmt.Errorf("error compiling template expression %q: %w", src, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return "", fmt.Errorf("error evaluating template expression %q: %w", src, err)
	}
	if debug.Template() {
		debug.Logf("template: %q at %s gave %#v\n", src, ctx, res)
	}
	return islandString(res)
}

func (t *templater) isFunc(name string) bool {
	switch name {
	case "lookup", "getpath", "whereami":
		return true
	}
	_, ok := t.cfg.funcs[name]
	return ok
}

// exprOpts exposes the path-resolution capabilities inside template
// expressions, bound to the node being rendered.
func (t *templater) exprOpts(ctx keypath.Path) []expr.Option {
	opts := []expr.Option{
		expr.Function("lookup", func(params ...any) (any, error) {
			ref := params[0].(string)
			node, ok, err := t.res.resolve(ref, ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			return ir.ToAny(node), nil
		},
			new(func(string) any)),
		expr.Function("getpath", func(params ...any) (any, error) {
			ref := strings.TrimPrefix(params[0].(string), t.cfg.sep)
			node, ok, err := t.res.lookupAbsolute(ref)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			return ir.ToAny(node), nil
		},
			new(func(string) any)),
		expr.Function("whereami", func(params ...any) (any, error) {
			return ctx.String(), nil
		},
			new(func() string)),
	}
	for name, fn := range t.cfg.funcs {
		opts = append(opts, expr.Function(name, fn))
	}
	return opts
}

// identifiers parses src and collects every identifier it references.
func identifiers(src string) ([]string, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	c := &identCollector{}
	ast.Walk(&tree.Node, c)
	return c.names, nil
}

type identCollector struct {
	names []string
}

func (c *identCollector) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok {
		c.names = append(c.names, id.Value)
	}
}

func islandString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		d, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("could not marshal template result %T: %w", v, err)
		}
		return string(d), nil
	}
}
