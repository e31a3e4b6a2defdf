package render

import "maps"

type Option func(*config)

type config struct {
	substTag  string
	nestedTag string
	sep       string

	env   map[string]any
	funcs map[string]func(params ...any) (any, error)
}

func newConfig() *config {
	return &config{
		substTag:  "=",
		nestedTag: "=",
		sep:       ".",
		env:       map[string]any{},
		funcs:     map[string]func(params ...any) (any, error){},
	}
}

// SubstitutionTag sets the prefix marking a scalar as a substitution
// reference. Default "=".
func SubstitutionTag(tag string) Option {
	return func(cfg *config) { cfg.substTag = tag }
}

// NestedKeyTag sets the suffix marking a mapping key as a nested-key
// merge instruction. Default "=".
func NestedKeyTag(tag string) Option {
	return func(cfg *config) { cfg.nestedTag = tag }
}

// KeySeparator sets the string joining path segments in references and
// nested keys. Default ".".
func KeySeparator(sep string) Option {
	return func(cfg *config) { cfg.sep = sep }
}

// TemplateVar binds a single extra variable in the template engine
// environment. Opaque to the core.
func TemplateVar(name string, v any) Option {
	return func(cfg *config) { cfg.env[name] = v }
}

// TemplateEnv merges extra variables into the template engine
// environment. Opaque to the core.
func TemplateEnv(env map[string]any) Option {
	return func(cfg *config) { maps.Copy(cfg.env, env) }
}

// TemplateFunc exposes fn under name inside template expressions.
func TemplateFunc(name string, fn func(params ...any) (any, error)) Option {
	return func(cfg *config) { cfg.funcs[name] = fn }
}
