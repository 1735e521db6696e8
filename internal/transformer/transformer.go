// Package transformer rewrites an HTML snippet for presentation.
//
// A single pass over the parsed tree converts and splits paragraphs into one
// paragraph per sentence, removes prompt headers, and bolds the leading
// "label:" of list items. Everything else is passed through untouched.
package transformer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HeaderMarkers are the phrases that mark an h2 or h3 for removal.
var HeaderMarkers = []string{
	"Write the Input in the language of British UK:",
	"Output:",
}

var (
	// labelPattern matches a leading run without a colon, then the first colon
	labelPattern = regexp.MustCompile(`^[^:]+:`)
	// documentPattern detects input that is a full document rather than a fragment
	documentPattern = regexp.MustCompile(`(?i)<!doctype[\s>]|<html[\s>]`)
)

// TextConverter converts the plain text of a paragraph.
type TextConverter interface {
	ConvertText(text string) string
}

// Result is the processed HTML and a summary of what changed.
type Result struct {
	HTML           string
	Paragraphs     int
	Sentences      int
	HeadersRemoved int
	ItemsBolded    int
}

// Transformer applies the paragraph, header and list rewrites.
type Transformer struct {
	conv TextConverter
}

// New returns a Transformer that converts paragraph text with conv.
func New(conv TextConverter) *Transformer {
	return &Transformer{conv: conv}
}

// Process parses src leniently, rewrites it and serializes the result.
// Malformed markup is recovered by the parser, so the only errors come from
// reading or rendering the tree.
func (t *Transformer) Process(src string) (*Result, error) {
	root, fragment, err := parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	res := &Result{}

	t.rewriteParagraphs(doc, res)
	removeHeaders(doc, res)
	boldListItems(doc, res)

	out, err := render(root, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	res.HTML = out
	return res, nil
}

// rewriteParagraphs replaces each <p> by one <p> per converted sentence.
func (t *Transformer) rewriteParagraphs(doc *goquery.Document, res *Result) {
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if t.conv != nil {
			text = t.conv.ConvertText(text)
		}

		sentences := SplitSentences(text)
		res.Paragraphs++
		res.Sentences += len(sentences)

		if len(sentences) == 0 {
			s.Remove()
			return
		}

		nodes := make([]*html.Node, 0, len(sentences))
		for _, sentence := range sentences {
			p := newElement(atom.P)
			p.AppendChild(newText(sentence))
			nodes = append(nodes, p)
		}
		s.ReplaceWithNodes(nodes...)
	})
}

func removeHeaders(doc *goquery.Document, res *Result) {
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		if IsMarkerHeader(s.Text()) {
			s.Remove()
			res.HeadersRemoved++
		}
	})
}

// boldListItems wraps the leading "label:" of each <li> in <strong>.
func boldListItems(doc *goquery.Document, res *Result) {
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		label, rest, ok := SplitLabel(s.Text())
		if !ok {
			return
		}

		strong := newElement(atom.Strong)
		strong.AppendChild(newText(label))

		s.Empty()
		s.AppendNodes(strong)
		if rest != "" {
			s.AppendNodes(newText(rest))
		}
		res.ItemsBolded++
	})
}

// IsMarkerHeader reports whether header text contains one of HeaderMarkers.
func IsMarkerHeader(text string) bool {
	for _, marker := range HeaderMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// SplitLabel splits text after its first colon when at least one
// non-colon character precedes it.
func SplitLabel(text string) (label, rest string, ok bool) {
	loc := labelPattern.FindStringIndex(text)
	if loc == nil {
		return "", text, false
	}
	return text[:loc[1]], text[loc[1]:], true
}

// SplitSentences cuts text after every '.', trims each piece and drops
// the empty ones. Abbreviations, decimals and ellipses are not special.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// parse returns a root node holding the parsed input. Fragments are parsed
// in a <body> context so no html/head/body wrapper is added.
func parse(src string) (root *html.Node, fragment bool, err error) {
	if documentPattern.MatchString(src) {
		root, err = html.Parse(strings.NewReader(src))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return nil, true, err
	}

	root = &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func render(root *html.Node, fragment bool) (string, error) {
	var buf bytes.Buffer
	if !fragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
