package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/golang/groupcache/lru"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/parser"
)

var ErrLibraryNotFound = errors.New("library not found")

// LibraryParseError reports a library whose source failed to parse.
type LibraryParseError struct {
	Name     string
	Messages []string
}

func (e *LibraryParseError) Error() string {
	return fmt.Sprintf("library %s: parse error: %s", e.Name, strings.Join(e.Messages, "; "))
}

type LoaderOptions struct {
	// Roots are searched in order; the first containing the library wins.
	Roots     []billy.Filesystem
	Extension string
	CacheSize int
}

type cacheKey struct {
	root int
	path string
}

type cachedProgram struct {
	sum     [sha256.Size]byte
	program *ast.Program
}

// Loader resolves `pawckage "name";` to parsed programs read from a list of
// filesystem roots. Parsed programs are cached until their source changes.
type Loader struct {
	roots []billy.Filesystem
	ext   string

	mu    sync.Mutex
	cache *lru.Cache
}

func NewLoader(opts LoaderOptions) *Loader {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultMaxCachedLibraries
	}
	roots := make([]billy.Filesystem, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		if root != nil {
			roots = append(roots, root)
		}
	}
	return &Loader{roots: roots, ext: ext, cache: lru.New(size)}
}

// ProjectRoots lists the library roots for a project: the manifest directory,
// its declared library directories, then each locked dependency.
func ProjectRoots(m *Manifest, lock *Lockfile) []billy.Filesystem {
	var roots []billy.Filesystem
	if m != nil {
		roots = append(roots, osfs.New(m.Dir))
		for _, dir := range m.LibraryDirs() {
			roots = append(roots, osfs.New(dir))
		}
	}
	if lock != nil {
		for _, pkg := range lock.Packages {
			if pkg.Path != "" {
				roots = append(roots, osfs.New(pkg.Path))
			}
		}
	}
	return roots
}

// Load returns the parsed program for the named library.
func (l *Loader) Load(name string) (*ast.Program, error) {
	file, err := l.fileName(name)
	if err != nil {
		return nil, err
	}
	for idx, root := range l.roots {
		data, err := util.ReadFile(root, file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("library %s: %w", name, err)
		}
		return l.parse(cacheKey{root: idx, path: file}, name, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

func (l *Loader) fileName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty library name", ErrLibraryNotFound)
	}
	cleaned := path.Clean("/" + name)[1:]
	if cleaned != name {
		return "", fmt.Errorf("library %s: invalid library name", name)
	}
	return cleaned + l.ext, nil
}

func (l *Loader) parse(key cacheKey, name string, data []byte) (*ast.Program, error) {
	sum := sha256.Sum256(data)

	l.mu.Lock()
	if cached, ok := l.cache.Get(key); ok {
		entry := cached.(cachedProgram)
		if entry.sum == sum {
			l.mu.Unlock()
			return entry.program, nil
		}
	}
	l.mu.Unlock()

	program, errs := parser.Parse(string(data))
	if len(errs) > 0 {
		return nil, &LibraryParseError{Name: name, Messages: errs}
	}

	l.mu.Lock()
	l.cache.Add(key, cachedProgram{sum: sum, program: program})
	l.mu.Unlock()
	return program, nil
}
