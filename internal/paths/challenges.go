// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// ResolveChallengeDir normalizes user-supplied input into a challenge
// corpus directory (containing .golf challenge fixtures).
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.vimgolf/challenges"
//   - "/path/to/project/.vimgolf/challenges" -> unchanged
//   - "/path/to/golf-fixtures" (containing at least one *.golf file) -> unchanged
//   - "" -> "./.vimgolf/challenges"
func ResolveChallengeDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if filepath.Base(path) == "challenges" && filepath.Base(filepath.Dir(path)) == ".vimgolf" {
		return path
	}

	if containsGolfFixtures(path) {
		return path
	}

	return filepath.Join(path, ".vimgolf", "challenges")
}

// containsGolfFixtures reports whether dir directly holds at least one
// ".golf" challenge fixture.
func containsGolfFixtures(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".golf" {
			return true
		}
	}
	return false
}
