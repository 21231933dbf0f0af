// Package loader reads assembly source programs from disk.
package loader

import (
	"fmt"
	"os"
	"strings"
)

// Program represents a source program read from disk.
type Program struct {
	// Path is the file the program was read from.
	Path string

	// Source is the raw program text.
	Source string

	// ArchHint is the architecture named by an "arch:" comment in the
	// leading comment block, or empty if the program declares none.
	ArchHint string
}

// Load reads a program source file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	source := string(data)
	return &Program{
		Path:     path,
		Source:   source,
		ArchHint: scanArchHint(source),
	}, nil
}

// scanArchHint scans the leading comment block for an "arch: <name>"
// directive. The first non-comment line ends the block.
func scanArchHint(source string) string {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		var comment string
		switch {
		case strings.HasPrefix(trimmed, "//"):
			comment = strings.TrimPrefix(trimmed, "//")
		case strings.HasPrefix(trimmed, ";"):
			comment = strings.TrimPrefix(trimmed, ";")
		default:
			return ""
		}

		comment = strings.TrimSpace(comment)
		if strings.HasPrefix(comment, "arch:") {
			return strings.TrimSpace(strings.TrimPrefix(comment, "arch:"))
		}
	}
	return ""
}
