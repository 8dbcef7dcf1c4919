package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Discover lists the scripts in dir (not recursive) whose names end in ext,
// sorted by name. Hidden files are skipped. A non-empty match keeps only
// base names matching that glob.
func Discover(dir, ext, match string) ([]string, error) {
	var filter glob.Glob
	if match != "" {
		g, err := glob.Compile(match)
		if err != nil {
			return nil, fmt.Errorf("invalid match pattern %q: %w", match, err)
		}
		filter = g
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		if filter != nil && !filter.Match(name) {
			continue
		}
		path := filepath.Join(dir, name)
		// Stat follows symlinks so linked scripts still count.
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		scripts = append(scripts, path)
	}
	return scripts, nil
}
