package attr

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssToAttr maps supported CSS properties to math attributes.
var cssToAttr = map[string]string{
	"color":            "mathcolor",
	"background":       "mathbackground",
	"background-color": "mathbackground",
	"font-size":        "mathsize",
}

// ParseStyle converts inline style declarations into attribute values
// keyed by attribute name. Unsupported properties are ignored.
func ParseStyle(style string) map[string]string {
	res := make(map[string]string)
	p := css.NewParser(parse.NewInput(bytes.NewReader([]byte(style))), true)

	var weight, slant string
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		prop := strings.ToLower(string(data))
		var sb strings.Builder
		for _, t := range p.Values() {
			sb.Write(t.Data)
		}
		val := strings.TrimSpace(sb.String())
		switch prop {
		case "font-weight":
			weight = val
		case "font-style":
			slant = val
		default:
			if name, ok := cssToAttr[prop]; ok {
				res[name] = val
			}
		}
	}

	switch {
	case weight == "bold" && slant == "italic":
		res["mathvariant"] = "bold-italic"
	case weight == "bold":
		res["mathvariant"] = "bold"
	case slant == "italic":
		res["mathvariant"] = "italic"
	case weight == "normal" || slant == "normal":
		res["mathvariant"] = "normal"
	}
	return res
}
