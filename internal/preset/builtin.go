package preset

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.json
var builtinFS embed.FS

// Builtin returns an embedded preset by name (file name without
// extension, e.g. "2col").
func Builtin(name string) (*Preset, error) {
	data, err := builtinFS.ReadFile(path.Join("presets", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("no built-in preset %q", name)
	}
	p, err := Parse(data, "json")
	if err != nil {
		// Embedded presets ship with the binary, so this is a build bug.
		panic(fmt.Sprintf("built-in preset %q is broken: %v", name, err))
	}
	return p, nil
}

// BuiltinNames lists the embedded presets in sorted order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("presets")
	if err != nil {
		panic("embedded presets directory missing: " + err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
