// Package prompts holds the model instruction templates, embedded as JSON objects of key -> template.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// AssessmentFile holds every template used by the assessment pipeline
const AssessmentFile = "assessment.json"

//go:embed *.json
var templateFS embed.FS

// catalog maps file name to its templates. Files are parsed once, on first use.
var catalog = sync.OnceValues(func() (map[string]map[string]string, error) {
	files, err := fs.Glob(templateFS, "*.json")
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string, len(files))
	for _, name := range files {
		raw, err := templateFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var templates map[string]string
		if err := json.Unmarshal(raw, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		out[name] = templates
	}
	return out, nil
})

func file(name string) (map[string]string, error) {
	all, err := catalog()
	if err != nil {
		return nil, err
	}
	templates, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("prompt file %s is not embedded", name)
	}
	return templates, nil
}

// Get returns the template stored under key in the named file.
func Get(filename, key string) (string, error) {
	templates, err := file(filename)
	if err != nil {
		return "", err
	}
	t, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return t, nil
}

// MustGet is Get for templates that ship with the binary; a miss is a programming error.
func MustGet(filename, key string) string {
	t, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return t
}

// Keys lists the template keys in the named file, sorted.
func Keys(filename string) ([]string, error) {
	templates, err := file(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format fills {{.Key}} placeholders in one pass, so a substituted value is
// never expanded again. Placeholders without a value stay in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
