package notify

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// the fixed stylesheet for report emails: collapsed table borders,
// centered header cells, padded body cells, zebra striping
const emailStyle = `h2 { font-size: 150% }
table { border-collapse: collapse }
th { text-align: center }
td { padding-left: 1em }
tbody tr:nth-child(odd) { background: #eee; }
tbody tr:hover { background: yellow; }`

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Typographer),
)

// RenderHTML converts a markdown report body into the HTML part of a
// report email.
func RenderHTML(body string) ([]byte, error) {
	var rendered bytes.Buffer
	err := markdown.Convert([]byte(body), &rendered)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<html><head>
<style type='text/css'>
%s
</style></head><body>
%s
</body></html>`, emailStyle, rendered.String())
	return out.Bytes(), nil
}
