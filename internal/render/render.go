package render

import (
	"bytes"
	"fmt"

	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/schema"
)

// Document renders a schema into one string in the requested format
// ("markdown" or "text").
func Document(s *schema.Schema, g *graph.Graph, format, title string) (string, error) {
	var buf bytes.Buffer
	switch format {
	case "", "markdown":
		r := NewMarkdown(&buf)
		r.SetTitle(title)
		if err := r.Render(s, g); err != nil {
			return "", err
		}
	case "text":
		if err := NewText(&buf).Render(s, g); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
	return buf.String(), nil
}
