// internal/service/template_service.go
package service

import (
	"sort"
	"strings"
)

// RenderTemplate replaces {key} placeholders in one pass, so values that happen to contain
// placeholder text are copied through unchanged.
func RenderTemplate(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
