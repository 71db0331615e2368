package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds .nix files under a root directory, applying
// exclude glob patterns and skipping hidden entries. The lexical walk
// order is the stable file order the merge stage depends on.
type FileDiscovery struct {
	rootDir  string
	excludes []compiledPattern
}

// NewFileDiscovery compiles the exclude patterns for a root directory.
func NewFileDiscovery(rootDir string, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.excludes = append(fd.excludes, compiledPattern{pattern: pattern, glob: g})
	}
	return fd, nil
}

// DiscoverFiles walks the tree and returns root-relative paths of the
// .nix files to process, in deterministic lexical order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && (isHidden(info.Name()) || fd.shouldExclude(relPath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(info.Name()) || !strings.HasSuffix(info.Name(), ".nix") {
			return nil
		}
		if fd.shouldExclude(relPath) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})

	return files, err
}

// shouldExclude checks a relative path against the exclude patterns,
// also matching directories against patterns written with a /** suffix.
func (fd *FileDiscovery) shouldExclude(relPath string) bool {
	if fd.matchesAny(relPath) {
		return true
	}
	return fd.matchesAny(relPath + "/**")
}

func (fd *FileDiscovery) matchesAny(path string) bool {
	for _, cp := range fd.excludes {
		if cp.glob.Match(path) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
