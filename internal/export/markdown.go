package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var mdEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// WriteMarkdown renders rep as a GitHub-flavoured Markdown table.
func WriteMarkdown(w io.Writer, rep Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rep.Title)
	fmt.Fprintf(&b, "%s\n\n", rep.Period())

	cols := Columns()
	b.WriteString("|")
	for _, c := range cols {
		b.WriteString(" " + mdEscaper.Replace(c) + " |")
	}
	b.WriteString("\n|")
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, r := range rep.Records {
		b.WriteString("|")
		for _, v := range Values(r) {
			b.WriteString(" " + mdEscaper.Replace(v) + " |")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; font-size: 0.85rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.5rem; vertical-align: top; }
th { background: #f2f2f2; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// WriteHTML renders the Markdown report through goldmark into a standalone
// HTML page.
func WriteHTML(w io.Writer, rep Report) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, rep); err != nil {
		return err
	}

	gm := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	var body bytes.Buffer
	if err := gm.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	return htmlPage.Execute(w, struct {
		Title   string
		Content template.HTML
	}{
		Title:   rep.Title,
		Content: template.HTML(body.String()),
	})
}
