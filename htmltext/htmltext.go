package htmltext

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Extract 從 HTML 文件中取出可見文字，連續空白合併為一個空格
// script、style、noscript、template 內的文字會被略過
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("HTMLTEXT: error parsing HTML: %w", err)
	}

	var words []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(n.Data)...)
		}
		// 遞歸遍歷子節點
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.Join(words, " "), nil
}

// ExtractFile 讀取檔案並取出文字
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("HTMLTEXT: open %s: %w", path, err)
	}
	defer f.Close()
	return Extract(f)
}
