// Package docs embeds the component reference shown by "deckhand docs".
package docs

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Topics returns the names of the available topics, sorted.
func Topics() []string {
	entries, _ := topicsFS.ReadDir("topics")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Get returns the markdown of one topic.
func Get(name string) (string, error) {
	data, err := topicsFS.ReadFile(path.Join("topics", name+".md"))
	if err != nil {
		return "", fmt.Errorf("unknown topic %q (have %s)", name, strings.Join(Topics(), ", "))
	}
	return string(data), nil
}
