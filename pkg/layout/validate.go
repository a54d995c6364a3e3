package layout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agm/pkg/types"
)

// Problem is one issue found in a profile. Problems never block loading;
// callers decide whether to warn or refuse.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Validate reports authoring mistakes in a profile: a relative game path,
// unnamed nodes, extensions on plain dirs and duplicated moddir names, which
// make symbolic resolution ambiguous.
func Validate(profile *types.Profile) []Problem {
	var problems []Problem

	if profile.Game.Path == "" {
		problems = append(problems, Problem{Message: "game path is empty"})
	} else if !filepath.IsAbs(profile.Game.Path) {
		problems = append(problems, Problem{Message: fmt.Sprintf("game path %q is not absolute", profile.Game.Path)})
	}

	seen := map[string]string{}
	var walk func(n types.LayoutNode, parent string)
	walk = func(n types.LayoutNode, parent string) {
		here := n.Name
		if parent != "" {
			here = parent + "/" + n.Name
		}
		if strings.TrimSpace(n.Name) == "" {
			problems = append(problems, Problem{Path: here, Message: "node has no name"})
		}
		if n.Kind != types.KindDir && n.Kind != types.KindModDir {
			problems = append(problems, Problem{Path: here, Message: fmt.Sprintf("node type %q is not dir or moddir", n.Kind)})
		}
		if !n.IsModDir() && len(n.Mime) > 0 {
			problems = append(problems, Problem{Path: here, Message: "mime is ignored on dir nodes"})
		}
		if n.IsModDir() {
			if first, dup := seen[n.Name]; dup {
				problems = append(problems, Problem{
					Path:    here,
					Message: fmt.Sprintf("moddir name %q already used at %s; @%s resolves there", n.Name, first, n.Name),
				})
			} else {
				seen[n.Name] = here
			}
		}
		for _, child := range n.Sub {
			walk(child, here)
		}
	}
	for _, root := range profile.Layout {
		walk(root, "")
	}

	return problems
}
