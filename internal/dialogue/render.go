package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// ErrUnknownVar is returned when a line references a variable that was
// never set.
var ErrUnknownVar = errors.New("unknown variable")

// Render replaces {{name}} placeholders in a line with vars values.
func Render(line string, vars map[string]string) (string, error) {
	if !strings.Contains(line, "{{") {
		return line, nil
	}

	var out strings.Builder
	rest := line
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", domain.InvalidInput("dialogue.render", "unclosed placeholder", nil)
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", domain.InvalidInput("dialogue.render", "empty placeholder", nil)
		}

		value, ok := vars[key]
		if !ok {
			return "", domain.InvalidInput("dialogue.render", fmt.Sprintf("placeholder %q", key), ErrUnknownVar)
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}
