package main

import (
	"os"
	"path/filepath"
	"strings"
)

// maxRecentROMs bounds the MRU list, matching
// original_source/src/emulator/recent_roms.rs's MAX_RECENT_ROMS.
const maxRecentROMs = 10

// recentROMsPath is, by original_source's own convention, a file next to
// the binary's working directory; TOML (the format the Rust original
// uses) is an explicit Non-goal for this core's configuration layer, so
// nesgo persists the same MRU list as one path per line instead.
const recentROMsPath = "recent_roms.txt"

// loadRecentROMs reads the MRU list, most-recent first. A missing file
// is not an error: it just means an empty list.
func loadRecentROMs() []string {
	data, err := os.ReadFile(recentROMsPath)
	if err != nil {
		return nil
	}
	var roms []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			roms = append(roms, line)
		}
	}
	return roms
}

// addRecentROM moves path to the front of the MRU list (removing any
// earlier occurrence), trims it to maxRecentROMs, and persists it.
func addRecentROM(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	roms := loadRecentROMs()
	filtered := roms[:0]
	for _, r := range roms {
		if r != abs {
			filtered = append(filtered, r)
		}
	}
	roms = append([]string{abs}, filtered...)
	if len(roms) > maxRecentROMs {
		roms = roms[:maxRecentROMs]
	}

	_ = os.WriteFile(recentROMsPath, []byte(strings.Join(roms, "\n")+"\n"), 0o644)
}
