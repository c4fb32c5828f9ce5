package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# placetree view state"

// stateFiles are the per-user files kept in a project's DirName. config.yaml
// is deliberately absent so the project config stays shareable.
var stateFiles = []string{TreeStateFile, ReportFile}

// EnsureStateIgnored adds every state file of projectDir/.placetree that no
// line of projectDir/.gitignore covers yet, under a single header block.
// The file is created when missing; running it again changes nothing.
func EnsureStateIgnored(projectDir string) error {
	path := filepath.Join(projectDir, ".gitignore")
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	missing := uncoveredStateFiles(string(content))
	if len(missing) == 0 {
		return nil
	}

	var b strings.Builder
	if len(content) > 0 {
		if content[len(content)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(gitignoreHeader + "\n")
	for _, name := range missing {
		b.WriteString(DirName + "/" + name + "\n")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return f.Close()
}

// uncoveredStateFiles returns the state file names, in stateFiles order,
// that no active line of a .gitignore body ignores.
func uncoveredStateFiles(gitignore string) []string {
	lines := strings.Split(gitignore, "\n")
	var missing []string
	for _, name := range stateFiles {
		covered := false
		for _, line := range lines {
			if ignoresStateFile(line, name) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, name)
		}
	}
	return missing
}

// ignoresStateFile reports whether a single .gitignore line ignores name
// inside DirName, either by naming the file or the whole directory.
// Comments and negations never match.
func ignoresStateFile(line, name string) bool {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' || line[0] == '!' {
		return false
	}
	line = strings.TrimSuffix(strings.TrimPrefix(line, "/"), "/")
	switch line {
	case DirName, DirName + "/*", DirName + "/**", DirName + "/**/*",
		DirName + "/" + name, name, "**/" + name:
		return true
	}
	return false
}
