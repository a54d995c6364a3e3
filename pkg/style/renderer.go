package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/types"
)

// RenderList renders a titled list, marking the item equal to current
func (r *Renderer) RenderList(title string, items []string, current string) string {
	var b strings.Builder
	b.WriteString(r.Styles.Title.Render(title) + "\n")
	if len(items) == 0 {
		b.WriteString(r.Indent(r.Styles.Muted.Render("(none)"), 1))
		return b.String()
	}
	for i, item := range items {
		line := "  " + item
		if item == current && current != "" {
			line = r.Styles.Success.Render("* " + item)
		}
		b.WriteString(r.Indent(line, 1))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderModSpec renders the files of a mod with their placement
func (r *Renderer) RenderModSpec(spec *types.ModSpec) string {
	var b strings.Builder
	b.WriteString(r.Styles.Title.Render(spec.Name))
	if spec.URL != "" {
		b.WriteString(" " + r.Styles.Muted.Render(spec.URL))
	}
	for _, f := range spec.Files {
		point := r.Styles.Point.Render(string(f.Point))
		if f.Point.IsEmpty() {
			point = r.Styles.Warning.Render("unresolved")
		}
		b.WriteString("\n" + r.Indent(fmt.Sprintf("%s %s", f.Target, point), 1))
	}
	return b.String()
}

// RenderLinks renders link destinations under a title
func (r *Renderer) RenderLinks(title string, links []types.Link) string {
	var b strings.Builder
	b.WriteString(r.Styles.Title.Render(title))
	for _, l := range links {
		b.WriteString("\n" + r.Indent(fmt.Sprintf("%s -> %s", l.Destination, r.Styles.Muted.Render(l.Source)), 1))
	}
	return b.String()
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) string {
	line := r.Styles.Error.Render("Error: ") + err.Error()

	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return line
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += "\n" + r.Indent(r.Styles.Muted.Render(fmt.Sprintf("%s: %v", k, details[k])), 1)
	}
	return line
}
