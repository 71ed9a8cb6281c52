package memdom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/dom"
)

// ParseFragment parses markup as the content of context (the body when nil)
// and returns detached nodes owned by d. Comments and doctypes are dropped.
func (d *Document) ParseFragment(markup string, context *Element) ([]dom.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	if context != nil && context.ns == dom.HTMLNamespace {
		ctx.Data = context.tag
		ctx.DataAtom = atom.Lookup([]byte(context.tag))
	}

	parsed, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, errors.New("E010").Wrap(err)
	}

	nodes := make([]dom.Node, 0, len(parsed))
	for _, p := range parsed {
		if n := d.fromHTML(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// Parse builds a document whose body holds the parsed markup.
func Parse(markup string) (*Document, error) {
	d := NewDocument()
	if err := d.body.SetInnerHTML(markup); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) fromHTML(n *html.Node) dom.Node {
	switch n.Type {
	case html.TextNode:
		return d.CreateTextNode(n.Data)
	case html.ElementNode:
		ns := dom.HTMLNamespace
		if n.Namespace == "svg" {
			ns = dom.SVGNamespace
		}
		el := d.newElement(ns, n.Data)
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			el.SetAttribute(name, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := d.fromHTML(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		return nil
	}
}
