package infobox

import (
	"strings"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// parseLegacyParams is the forgiving line-oriented fallback used when
// the balanced scan rejects the infobox body. A line opens a new
// parameter when it starts with "|", contains "=", and the running
// brace depth says we are not inside a nested template; every other
// line is a continuation of the current value. The depth counter is
// reset per parameter so one unbalanced value cannot swallow the rest
// of the infobox.
func parseLegacyParams(span string) []wikitext.Param {
	body := span
	if strings.HasPrefix(body, "{{") {
		body = body[2:]
	}
	body = strings.TrimRight(body, " \t\n")
	body = strings.TrimSuffix(body, "}}")

	var params []wikitext.Param
	cur := -1
	depth := 0

	for i, line := range strings.Split(body, "\n") {
		if i == 0 {
			// first line carries the template name; anything after a
			// pipe on it is field content
			cut := strings.IndexByte(line, '|')
			if cut < 0 {
				continue
			}
			line = line[cut:]
		}

		trimmed := strings.TrimSpace(line)
		if depth <= 0 && strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed, "=") {
			kv := strings.SplitN(trimmed[1:], "=", 2)
			key := strings.TrimSpace(kv[0])
			if key != "" {
				value := strings.TrimSpace(kv[1])
				params = append(params, wikitext.Param{Key: key, Value: value})
				cur = len(params) - 1
				depth = braceDelta(value)
				continue
			}
		}

		if cur >= 0 {
			params[cur].Value = strings.TrimRight(params[cur].Value+"\n"+line, " \t")
			depth += braceDelta(line)
		}
	}

	for i := range params {
		params[i].Value = strings.TrimSpace(params[i].Value)
	}
	return params
}

func braceDelta(s string) int {
	return strings.Count(s, "{{") - strings.Count(s, "}}")
}
