package scanner

import "strings"

// localeAliases carries alternate spellings users say or type for well-known
// brands, keyed by the lowercase executable stem. Mostly Russian alternates.
var localeAliases = map[string][]string{
	"notepad":  {"блокнот"},
	"calc":     {"калькулятор"},
	"mspaint":  {"паинт", "paint"},
	"explorer": {"проводник"},
	"cmd":      {"командная строка", "терминал"},
	"taskmgr":  {"диспетчер задач"},
	"chrome":   {"хром", "гугл хром"},
	"firefox":  {"фаерфокс", "мозила"},
	"telegram": {"телеграм", "телеграмм"},
	"discord":  {"дискорд"},
	"steam":    {"стим"},
	"spotify":  {"спотифай"},
	"code":     {"вс код", "vscode"},
	"word":     {"ворд"},
	"excel":    {"эксель"},
}

// buildAliases produces the lowercase alias set for a descriptor: display
// name, file stem, and any locale alternates. The result always has at least
// one entry and no duplicates.
func buildAliases(name, fileName string, extra ...string) []string {
	stem := strings.ToLower(strings.TrimSuffix(fileName, executableExt))

	seen := make(map[string]struct{})
	var out []string
	add := func(alias string) {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			return
		}
		if _, dup := seen[alias]; dup {
			return
		}
		seen[alias] = struct{}{}
		out = append(out, alias)
	}

	add(name)
	add(stem)
	for _, alt := range localeAliases[stem] {
		add(alt)
	}
	for _, e := range extra {
		add(e)
	}
	return out
}
