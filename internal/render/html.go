package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
)

const htmlStyle = `body {
  font-family: "Times New Roman", Times, Georgia, serif;
  font-size: 12pt;
  line-height: 1.6;
  max-width: 52rem;
  margin: 2rem auto;
  padding: 0 1.5rem;
  color: #1a1a1a;
}
h1 { text-align: center; font-size: 20pt; margin-bottom: 0.3rem; }
h2 { font-size: 15pt; border-bottom: 1px solid #ccc; padding-bottom: 0.2rem; margin-top: 2rem; }
h3, h4 { font-size: 13pt; }
p { text-align: justify; }
img { display: block; max-width: 100%; margin: 1.2rem auto 0.4rem; }
em { color: #444; }
ol, ul { margin-left: 1.2rem; }
`

// HTML renders the artifact as one standalone document: the markdown body
// converted through goldmark, images inlined as data URIs, serif styling.
func HTML(art *document.Artifact) (string, error) {
	md := body(art, func(_, _ int, asset document.ImageAsset) string {
		return fmt.Sprintf("data:image/%s;base64,%s",
			asset.Format, base64.StdEncoding.EncodeToString(asset.Data))
	})

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(art.Title))
	sb.WriteString("<style>\n")
	sb.WriteString(htmlStyle)
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.Write(buf.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}
