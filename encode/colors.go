package encode

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

const escape = "\x1b"

func attrFormat(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

func prop(attr color.Attribute) *printer.Property {
	return &printer.Property{
		Prefix: attrFormat(attr),
		Suffix: attrFormat(color.Reset),
	}
}

// colorize re-tokenizes rendered YAML and wraps tokens in ANSI color
// attributes.
func colorize(d []byte) []byte {
	p := printer.Printer{
		MapKey: func() *printer.Property {
			return prop(color.FgHiCyan)
		},
		String: func() *printer.Property {
			return prop(color.FgGreen)
		},
		Number: func() *printer.Property {
			return prop(color.FgHiMagenta)
		},
		Bool: func() *printer.Property {
			return prop(color.FgHiYellow)
		},
		Anchor: func() *printer.Property {
			return prop(color.FgHiBlue)
		},
		Alias: func() *printer.Property {
			return prop(color.FgHiBlue)
		},
	}
	tokens := lexer.Tokenize(string(d))
	return []byte(p.PrintTokens(tokens))
}
