package config

import (
	"fmt"
	"strings"

	agmerrors "github.com/arthur-debert/agm/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent renders the commented defaults file for cfg. Keys
// whose value in cfg matches the default stay commented out; keys cfg
// changes are written as live assignments. A nil cfg yields the defaults
// with every assignment commented out.
func GenerateConfigContent(cfg *Config) (string, error) {
	defaults := defaultsKoanf()
	effective := defaults
	if cfg != nil {
		data, err := gotoml.Marshal(cfg)
		if err != nil {
			return "", agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to encode configuration")
		}
		effective = koanf.New(".")
		if err := effective.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return "", agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to read back configuration")
		}
	}

	var (
		result  []string
		section string
	)
	for _, line := range strings.Split(string(defaultConfig), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			section = strings.Trim(trimmed, "[]")
			result = append(result, line)
		default:
			name := strings.TrimSpace(strings.SplitN(trimmed, "=", 2)[0])
			key := name
			if section != "" {
				key = section + "." + name
			}
			if fmt.Sprint(effective.Get(key)) == fmt.Sprint(defaults.Get(key)) {
				result = append(result, "# "+line)
				continue
			}
			assignment, err := gotoml.Marshal(map[string]interface{}{name: effective.Get(key)})
			if err != nil {
				return "", agmerrors.Wrapf(err, agmerrors.ErrConfigSave, "failed to encode %s", key)
			}
			result = append(result, strings.TrimSpace(string(assignment)))
		}
	}

	return strings.Join(result, "\n"), nil
}
