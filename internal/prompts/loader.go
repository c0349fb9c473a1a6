// Package prompts serves the prompt templates embedded in the binary.
// Templates use {{.Key}} placeholders filled by Render.
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

//go:embed *.json
var embedded embed.FS

// Generation is the file holding the page generation prompts.
const Generation = "generation.json"

// Library loads prompt files from a filesystem and caches the parsed result.
type Library struct {
	fsys  fs.FS
	mu    sync.RWMutex
	files map[string]map[string]string
}

// NewLibrary returns a library reading from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys, files: map[string]map[string]string{}}
}

var defaultLibrary = NewLibrary(embedded)

// Get returns the prompt stored under key in the embedded file.
func Get(file, key string) (string, error) { return defaultLibrary.Get(file, key) }

// MustGet is Get for prompts the program cannot run without.
func MustGet(file, key string) string {
	p, err := defaultLibrary.Get(file, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return p
}

// Render looks up a prompt in the embedded file and fills its placeholders.
func Render(file, key string, data map[string]string) (string, error) {
	p, err := defaultLibrary.Get(file, key)
	if err != nil {
		return "", err
	}
	return Format(p, data), nil
}

// Keys lists the prompt keys of an embedded file in sorted order.
func Keys(file string) ([]string, error) { return defaultLibrary.Keys(file) }

// Get returns the prompt stored under key in file.
func (l *Library) Get(file, key string) (string, error) {
	prompts, err := l.load(file)
	if err != nil {
		return "", err
	}
	p, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return p, nil
}

// Keys lists the prompt keys of file in sorted order.
func (l *Library) Keys(file string) ([]string, error) {
	prompts, err := l.load(file)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(prompts))
	for k := range prompts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Reset drops every cached file.
func (l *Library) Reset() {
	l.mu.Lock()
	l.files = map[string]map[string]string{}
	l.mu.Unlock()
}

func (l *Library) load(file string) (map[string]string, error) {
	l.mu.RLock()
	prompts, ok := l.files[file]
	l.mu.RUnlock()
	if ok {
		return prompts, nil
	}

	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	l.mu.Lock()
	l.files[file] = prompts
	l.mu.Unlock()
	return prompts, nil
}

// Format replaces {{.Key}} placeholders with values from data. Unknown
// placeholders are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{."+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
