// Package command classifies formatting actions and runs them through the
// host's text-editing primitive.
package command

import (
	"sort"
	"strings"
)

type Category int

const (
	Block Category = iota + 1
	Inline
	Source
	Insert
	Wrap
)

func (c Category) String() string {
	switch c {
	case Block:
		return "block"
	case Inline:
		return "inline"
	case Source:
		return "source"
	case Insert:
		return "insert"
	case Wrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// Action names with special handling.
const (
	FormatBlock          = "formatblock"
	InsertHTML           = "inserthtml"
	Paragraph            = "p"
	Indent               = "indent"
	CreateLink           = "createlink"
	Unlink               = "unlink"
	Code                 = "code"
	InsertHorizontalRule = "inserthorizontalrule"
)

var categories = map[string]Category{
	"p":          Block,
	"h1":         Block,
	"h2":         Block,
	"h3":         Block,
	"h4":         Block,
	"h5":         Block,
	"h6":         Block,
	"blockquote": Block,
	"pre":        Block,

	"bold":                Inline,
	"italic":              Inline,
	"underline":           Inline,
	"insertorderedlist":   Inline,
	"insertunorderedlist": Inline,
	"indent":              Inline,
	"outdent":             Inline,

	"insertimage": Source,
	"createlink":  Source,
	"unlink":      Source,

	"inserthorizontalrule": Insert,
	"insert":               Insert,

	"code": Wrap,
}

// Classify returns the category of name, ignoring case.
func Classify(name string) (Category, bool) {
	c, ok := categories[strings.ToLower(name)]
	return c, ok
}

// Names lists the action names of c, sorted.
func Names(c Category) []string {
	var out []string
	for name, cat := range categories {
		if cat == c {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
