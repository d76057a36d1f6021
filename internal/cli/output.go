package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// print writes v as JSON or YAML, or the table rendering otherwise. YAML
// keys follow the JSON field names.
func (a *app) print(v any, table func() string) error {
	switch a.output {
	case OutputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(a.out, table())
	return err
}

// message prints a one-line status, or {"message": ...} in structured
// formats.
func (a *app) message(msg string) error {
	return a.print(map[string]string{"message": msg}, func() string { return msg })
}

// confirm asks a yes/no question on the command's input. Anything but y,
// yes, s or sí is a no.
func (a *app) confirm(question string) bool {
	response := strings.ToLower(strings.TrimSpace(a.prompt(question + " [y/N]")))
	return response == "y" || response == "yes" || response == "s" || response == "si" || response == "sí"
}
