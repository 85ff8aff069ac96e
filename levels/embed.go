package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var LevelsFS embed.FS

const sequenceFile = "sequence.yaml"

// Load reads a level file, preferring an on-disk copy under levels/ so edits
// are picked up by the watcher without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}

// levelFiles lists the bundled level descriptors plus any extra ones found
// on disk under levels/.
func levelFiles() ([]string, error) {
	names, err := fs.Glob(LevelsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	if disk, err := filepath.Glob(filepath.Join("levels", "*.yaml")); err == nil {
		for _, d := range disk {
			names = append(names, filepath.Base(d))
		}
	}
	sort.Strings(names)

	var out []string
	for i, n := range names {
		if n == sequenceFile || (i > 0 && names[i-1] == n) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
