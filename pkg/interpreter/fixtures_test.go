package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/AlenVelocity/MeowScript/pkg/driver"
)

const fixturesDir = "testdata/fixtures"

// TestFixtures runs every testdata/fixtures/*.meow script and compares its
// output with the neighbouring .out file. A script that ends in an error
// contributes a final "error: <message>" line.
func TestFixtures(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join(fixturesDir, "*.meow"))
	if err != nil {
		t.Fatal(err)
	}
	if len(scripts) == 0 {
		t.Fatalf("no fixtures found in %s", fixturesDir)
	}
	for _, script := range scripts {
		name := strings.TrimSuffix(filepath.Base(script), ".meow")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(script)
			if err != nil {
				t.Fatal(err)
			}
			want, err := os.ReadFile(strings.TrimSuffix(script, ".meow") + ".out")
			if err != nil {
				t.Fatalf("missing expected output: %v", err)
			}

			var out bytes.Buffer
			interp := New(
				WithStdout(&out),
				WithStdin(strings.NewReader("")),
				WithFilesystem(memfs.New()),
				WithLoader(driver.NewLoader(driver.LoaderOptions{
					Roots: []billy.Filesystem{osfs.New(fixturesDir)},
				})),
			)
			if _, err := interp.Run(string(source)); err != nil {
				out.WriteString("error: " + err.Error() + "\n")
			}

			if got := out.String(); got != string(want) {
				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(string(want), got, false)
				t.Fatalf("output mismatch for %s:\n%s", script, dmp.DiffPrettyText(diffs))
			}
		})
	}
}
