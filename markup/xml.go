package markup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

var ErrNoRoot = errors.New("document has no root element")

// Parse reads XML document into new arena.
func Parse(r io.Reader) (*Document, error) {
	src := etree.NewDocument()
	src.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        namedEntities(),
		Permissive:    true,
	}
	if _, err := src.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read markup: %w", err)
	}
	root := src.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	d := NewDocument()
	d.root = d.importElement(root)
	return d, nil
}

// ParseString is convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load reads document from file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Document) importElement(el *etree.Element) NodeID {
	n := d.alloc(node{typ: ElementNode, space: el.NamespaceURI(), prefix: el.Space, tag: el.Tag})
	for _, a := range el.Attr {
		d.nodes[n].attrs = append(d.nodes[n].attrs, Attr{Space: a.Space, Key: a.Key, Value: a.Value})
	}
	for _, t := range el.Child {
		var c NodeID
		switch v := t.(type) {
		case *etree.Element:
			c = d.importElement(v)
		case *etree.CharData:
			c = d.alloc(node{typ: TextNode, value: v.Data})
		case *etree.Comment:
			c = d.alloc(node{typ: CommentNode, value: v.Data})
		case *etree.ProcInst:
			c = d.alloc(node{typ: ProcInstNode, tag: v.Target, value: v.Inst})
		default:
			continue
		}
		d.appendQuiet(n, c)
	}
	return n
}

// Write serializes the document as indented XML.
func (d *Document) Write(w io.Writer) error {
	if !d.Valid(d.root) {
		return ErrNoRoot
	}
	out := etree.NewDocument()
	out.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.SetRoot(d.exportElement(d.root, "", ""))
	out.Indent(2)
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write markup: %w", err)
	}
	return nil
}

// String returns compact serialization of the subtree rooted at n, mostly
// useful in diagnostics and tests.
func (d *Document) String(n NodeID) string {
	out := etree.NewDocument()
	out.WriteSettings = etree.WriteSettings{CanonicalText: true, CanonicalAttrVal: true}
	switch d.Type(n) {
	case ElementNode:
		out.SetRoot(d.exportElement(n, d.Namespace(n), d.nodes[n].prefix))
	case TextNode:
		return d.Value(n)
	default:
		return ""
	}
	s, err := out.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (d *Document) exportElement(n NodeID, parentSpace, parentPrefix string) *etree.Element {
	nd := &d.nodes[n]
	prefix := nd.prefix
	if prefix == "" && nd.space == parentSpace {
		prefix = parentPrefix
	}
	el := etree.NewElement(nd.tag)
	el.Space = prefix
	declared := false
	for _, a := range nd.attrs {
		if a.Space != "" {
			el.CreateAttr(a.Space+":"+a.Key, a.Value)
		} else {
			el.CreateAttr(a.Key, a.Value)
		}
		if (a.Space == "" && a.Key == "xmlns") || a.Space == "xmlns" {
			declared = true
		}
	}
	if nd.space != parentSpace && nd.space != "" && !declared {
		if prefix == "" {
			el.CreateAttr("xmlns", nd.space)
		} else {
			el.CreateAttr("xmlns:"+prefix, nd.space)
		}
	}
	for c := nd.first; c != NoNode; c = d.nodes[c].next {
		cn := &d.nodes[c]
		switch cn.typ {
		case ElementNode:
			el.AddChild(d.exportElement(c, nd.space, prefix))
		case TextNode:
			el.CreateText(cn.value)
		case CommentNode:
			el.CreateComment(cn.value)
		case ProcInstNode:
			el.CreateProcInst(cn.tag, cn.value)
		}
	}
	return el
}

// mathEntities lists named character references commonly found in MathML
// sources. Values come from the HTML5 table.
var mathEntities = []string{
	"ApplyFunction", "InvisibleTimes", "InvisibleComma", "af", "it", "ic",
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi", "rho",
	"sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
	"Gamma", "Delta", "Theta", "Lambda", "Xi", "Pi", "Sigma", "Upsilon",
	"Phi", "Psi", "Omega",
	"sum", "prod", "int", "infin", "part", "nabla", "minus", "plusmn",
	"times", "divide", "sdot", "middot", "le", "ge", "ne", "equiv", "asymp",
	"approx", "prop", "isin", "notin", "sub", "sup", "sube", "supe", "cup",
	"cap", "and", "or", "not", "forall", "exist", "empty", "rarr", "larr",
	"harr", "rArr", "lArr", "hArr", "radic", "lang", "rang", "lceil",
	"rceil", "lfloor", "rfloor", "prime", "Prime", "hellip", "nbsp",
	"ThinSpace", "MediumSpace", "ThickSpace", "NegativeThinSpace",
	"PlusMinus", "Integral", "Sum", "Product", "LeftAngleBracket",
	"RightAngleBracket", "DoubleRightArrow", "RightArrow", "LeftArrow",
	"Element", "NotElement", "emsp", "ensp", "thinsp",
}

func namedEntities() map[string]string {
	m := make(map[string]string, len(mathEntities))
	for _, name := range mathEntities {
		ref := "&" + name + ";"
		if v := html.UnescapeString(ref); v != ref {
			m[name] = v
		}
	}
	return m
}
