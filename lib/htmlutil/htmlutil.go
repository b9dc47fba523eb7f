package htmlutil

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("farescan.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// ScriptTexts returns the text of every inline <script> element in document order.
// Scripts with a src attribute and scripts with no text are skipped.
func ScriptTexts(ctx context.Context, doc *goquery.Document) []string {
	_, span := tracer.Start(ctx, "ScriptTexts")
	defer span.End()

	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		for _, n := range s.Nodes {
			text := GetText(n)
			if strings.TrimSpace(text) == "" {
				continue
			}
			scripts = append(scripts, text)
		}
	})

	span.SetAttributes(attribute.Int("scripts", len(scripts)))
	return scripts
}
