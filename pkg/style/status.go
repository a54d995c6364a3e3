package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/agm/pkg/status"
	"github.com/charmbracelet/lipgloss"
)

// stateIndicators prefix each entry of a report
var stateIndicators = map[status.LinkState]string{
	status.StateLinked:       "✓",
	status.StateMissing:      "○",
	status.StateDangling:     "✗",
	status.StateConflict:     "✗",
	status.StateForeign:      "?",
	status.StateBlocked:      "-",
	status.StateSkipped:      "-",
	status.StateNotInstalled: "!",
}

// StateStyle returns the style of a link state
func (r *Renderer) StateStyle(s status.LinkState) lipgloss.Style {
	switch s {
	case status.StateLinked:
		return r.Styles.Success
	case status.StateMissing, status.StateNotInstalled:
		return r.Styles.Warning
	case status.StateDangling, status.StateConflict:
		return r.Styles.Error
	case status.StateForeign:
		return r.Styles.Foreign
	default:
		return r.Styles.Muted
	}
}

// RenderEntry renders one line of a report
func (r *Renderer) RenderEntry(e status.Entry) string {
	indicator := stateIndicators[e.State]
	state := r.StateStyle(e.State).Render(fmt.Sprintf("%s %-13s", indicator, e.State))

	switch e.State {
	case status.StateNotInstalled:
		return state + " " + r.Styles.Muted.Render("no sidecar in storage")
	case status.StateBlocked, status.StateSkipped:
		point := string(e.Point)
		if point == "" {
			point = "unresolved"
		}
		return fmt.Sprintf("%s %s %s", state, e.Target, r.Styles.Point.Render("("+point+")"))
	case status.StateForeign:
		return fmt.Sprintf("%s %s -> %s %s", state, e.Target, r.Styles.Path.Render(e.Destination),
			r.Styles.Muted.Render("points to "+e.Actual))
	default:
		return fmt.Sprintf("%s %s -> %s", state, e.Target, r.Styles.Path.Render(e.Destination))
	}
}

// RenderReport renders the status of one game grouped by mod
func (r *Renderer) RenderReport(report *status.Report) string {
	var b strings.Builder

	header := r.Styles.Title.Render(report.Game)
	if report.ActivePreset == "" {
		header += " " + r.Styles.Muted.Render("(no active preset)")
	} else {
		header += " " + r.Styles.Point.Render("["+report.ActivePreset+"]")
	}
	b.WriteString(header + "\n")

	mod := ""
	for _, e := range report.Entries {
		if e.Mod != mod {
			mod = e.Mod
			b.WriteString(r.Indent(r.Styles.Bold.Render(mod), 1) + "\n")
		}
		b.WriteString(r.Indent(r.RenderEntry(e), 2) + "\n")
	}

	if len(report.Stray) > 0 {
		b.WriteString(r.Indent(r.Styles.Warning.Render("stray links"), 1) + "\n")
		for _, l := range report.Stray {
			b.WriteString(r.Indent(fmt.Sprintf("%s -> %s", l.Destination, r.Styles.Muted.Render(l.Source)), 2) + "\n")
		}
	}

	b.WriteString(r.Indent(r.renderCounts(report), 1))
	return b.String()
}

func (r *Renderer) renderCounts(report *status.Report) string {
	counts := report.Counts()
	parts := []string{}
	for _, s := range []status.LinkState{
		status.StateLinked, status.StateMissing, status.StateDangling, status.StateConflict,
		status.StateForeign, status.StateBlocked, status.StateSkipped, status.StateNotInstalled,
	} {
		if n := counts[s]; n > 0 {
			parts = append(parts, r.StateStyle(s).Render(fmt.Sprintf("%d %s", n, s)))
		}
	}
	if n := len(report.Stray); n > 0 {
		parts = append(parts, r.Styles.Warning.Render(fmt.Sprintf("%d stray", n)))
	}
	if len(parts) == 0 {
		return r.Styles.Muted.Render("nothing linked")
	}
	return strings.Join(parts, ", ")
}
