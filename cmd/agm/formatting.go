package agm

import (
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/arthur-debert/agm/pkg/style"
	"github.com/spf13/cobra"
)

// helpRenderer styles help output; it is plain when stdout is not a
// color terminal
var helpRenderer = style.NewRenderer(os.Stdout)

// symbolicPoint matches @moddir references in help text
var symbolicPoint = regexp.MustCompile(`@[A-Za-z0-9_.-]+`)

func formatBold(s string) string {
	return helpRenderer.Styles.Bold.Render(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(strings.TrimSuffix(s, ":")) + ":")
}

func formatMuted(s string) string {
	return helpRenderer.Styles.Muted.Render(s)
}

// formatPoints highlights symbolic points such as @Data in examples
func formatPoints(s string) string {
	return symbolicPoint.ReplaceAllStringFunc(s, func(p string) string {
		return helpRenderer.Styles.Point.Render(p)
	})
}

// initTemplateFormatting adds the functions the usage template calls
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":       formatBold,
		"boldUpper":  formatBoldUpper,
		"muted":      formatMuted,
		"points":     formatPoints,
		"topicsHint": func() string { return MsgTopicsHint },
	})
}
