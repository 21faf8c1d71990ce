package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/AlenVelocity/MeowScript/pkg/interpreter"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// inProject switches into a fresh directory populated with files.
func inProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	t.Chdir(dir)
	t.Setenv("MEOW_CACHE", filepath.Join(t.TempDir(), "cache"))
	return dir
}

func TestVersionAndHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != 0 || stdout != cliToolVersion+"\n" {
		t.Fatalf("--version = %d %q", code, stdout)
	}
	code, stdout, _ = runCLI(t, "--help")
	if code != 0 || !strings.Contains(stdout, "meow run <file.meow>") {
		t.Fatalf("--help = %d %q", code, stdout)
	}
	code, _, stderr := runCLI(t, "--bogus")
	if code != 1 || !strings.Contains(stderr, "unknown flag --bogus") {
		t.Fatalf("--bogus = %d %q", code, stderr)
	}
}

func TestRunScript(t *testing.T) {
	inProject(t, map[string]string{
		"hello.meow": `meow("hello"); scratch n = 2; n * 21`,
		"quiet.meow": `log("only output"); purrhaps (clawful) { 1 }`,
	})
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"run", "hello.meow"}, "Meow! hello\n42\n"},
		{[]string{"hello.meow"}, "Meow! hello\n42\n"},
		{[]string{"run", "quiet.meow"}, "only output\n"},
	}
	for _, tc := range tests {
		code, stdout, stderr := runCLI(t, tc.args...)
		if code != 0 || stdout != tc.want {
			t.Fatalf("%v = %d %q (stderr %q), want %q", tc.args, code, stdout, stderr, tc.want)
		}
	}
}

func TestRunRejectsOtherExtensions(t *testing.T) {
	inProject(t, map[string]string{"script.txt": "1"})
	code, _, stderr := runCLI(t, "run", "script.txt")
	if code != 1 || stderr != "File must have the extension .meow\n" {
		t.Fatalf("got %d %q", code, stderr)
	}
}

func TestRunReportsErrors(t *testing.T) {
	inProject(t, map[string]string{
		"broken.meow":  "scratch = 1;\nscratch y 2;",
		"runtime.meow": `log("before"); missing;`,
	})

	code, _, stderr := runCLI(t, "run", "broken.meow")
	if code != 1 {
		t.Fatalf("parse failure exit = %d", code)
	}
	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected one line per parse error, got %q", stderr)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "\t") {
			t.Fatalf("parse error line not indented: %q", line)
		}
	}

	code, stdout, stderr := runCLI(t, "run", "runtime.meow")
	if code != 1 || stdout != "before\n" || stderr != "error: identifier not found: missing\n" {
		t.Fatalf("runtime failure = %d %q %q", code, stdout, stderr)
	}

	code, _, stderr = runCLI(t, "run", "absent.meow")
	if code != 1 || !strings.HasPrefix(stderr, "Could not read file:") {
		t.Fatalf("missing file = %d %q", code, stderr)
	}
}

func TestRunUsesManifestLibraries(t *testing.T) {
	inProject(t, map[string]string{
		"meow.yml":         "name: demo\nlibraries:\n  - lib\n",
		"lib/helpers.meow": `scratch helper = pawction() { "from lib" };`,
		"main.meow":        `pawckage "helpers"; log(helper());`,
	})
	code, stdout, stderr := runCLI(t, "run", "main.meow")
	if code != 0 || stdout != "from lib\n" {
		t.Fatalf("got %d %q %q", code, stdout, stderr)
	}
}

func TestRunWithoutFileUsesManifestEntry(t *testing.T) {
	dir := inProject(t, map[string]string{
		"meow.yml":      "name: demo\nentry: src/main.meow\n",
		"src/main.meow": `log("from entry"); 6 * 7`,
	})
	code, stdout, stderr := runCLI(t, "run")
	if code != 0 || stdout != "from entry\n42\n" {
		t.Fatalf("run = %d %q %q", code, stdout, stderr)
	}

	t.Chdir(filepath.Join(dir, "src"))
	code, stdout, stderr = runCLI(t, "run")
	if code != 0 || stdout != "from entry\n42\n" {
		t.Fatalf("run from subdirectory = %d %q %q", code, stdout, stderr)
	}
}

func TestRunWithoutFileOrEntry(t *testing.T) {
	inProject(t, map[string]string{"meow.yml": "name: demo\n"})
	code, _, stderr := runCLI(t, "run")
	if code != 1 || !strings.Contains(stderr, "no entry in meow.yml") {
		t.Fatalf("got %d %q", code, stderr)
	}
	code, _, stderr = runCLI(t, "run", "a.meow", "b.meow")
	if code != 1 || !strings.Contains(stderr, "expects at most one file") {
		t.Fatalf("got %d %q", code, stderr)
	}
}

func TestRunRejectsInvalidManifest(t *testing.T) {
	inProject(t, map[string]string{
		"meow.yml":  "version: 1.0.0\n",
		"main.meow": "1",
	})
	code, _, stderr := runCLI(t, "run", "main.meow")
	if code != 1 || !strings.Contains(stderr, "name must be provided") {
		t.Fatalf("got %d %q", code, stderr)
	}
}

func TestDepsInstallLocksPathDependency(t *testing.T) {
	dir := inProject(t, map[string]string{
		"meow.yml":                "name: demo\ndependencies:\n  shared:\n    path: vendor/shared\n",
		"vendor/shared/util.meow": `scratch twice = pawction(x) { x * 2 };`,
		"main.meow":               `pawckage "util"; twice(21)`,
	})

	code, stdout, stderr := runCLI(t, "deps", "install")
	if code != 0 {
		t.Fatalf("deps install = %d %q", code, stderr)
	}
	if !strings.Contains(stdout, "locked shared path+vendor/shared") || !strings.Contains(stdout, "(1 dependency)") {
		t.Fatalf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "meow.lock")); err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}

	code, stdout, stderr = runCLI(t, "run", "main.meow")
	if code != 0 || stdout != "42\n" {
		t.Fatalf("run with locked dependency = %d %q %q", code, stdout, stderr)
	}
}

func TestDepsErrors(t *testing.T) {
	inProject(t, nil)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"deps"}, "expects a subcommand"},
		{[]string{"deps", "upgrade"}, `unknown deps subcommand "upgrade"`},
		{[]string{"deps", "install", "x"}, "does not take arguments"},
		{[]string{"deps", "install"}, "meow.yml not found"},
	}
	for _, tc := range tests {
		code, _, stderr := runCLI(t, tc.args...)
		if code != 1 || !strings.Contains(stderr, tc.want) {
			t.Fatalf("%v = %d %q, want mention of %q", tc.args, code, stderr, tc.want)
		}
	}
}

func TestReadInputContinuesIncompleteSource(t *testing.T) {
	lines := []string{"scratch f = pawction(x) {", "  x + 1", "};"}
	var prompts []string
	prompt := func(p string) (string, error) {
		prompts = append(prompts, p)
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}

	src, ok := readInput(prompt, ">> ", continuationPrompt)
	if !ok {
		t.Fatalf("readInput reported closed input")
	}
	if src != "scratch f = pawction(x) {\n  x + 1\n};" {
		t.Fatalf("src = %q", src)
	}
	if strings.Join(prompts, "|") != ">> |.. |.. " {
		t.Fatalf("prompts = %q", prompts)
	}

	if _, ok := readInput(prompt, ">> ", continuationPrompt); ok {
		t.Fatalf("expected closed input at EOF")
	}
}

func TestReadInputAbort(t *testing.T) {
	prompt := func(string) (string, error) { return "", liner.ErrPromptAborted }
	src, ok := readInput(prompt, ">> ", continuationPrompt)
	if !ok || src != "" {
		t.Fatalf("abort = %q %v", src, ok)
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 + 2", false},
		{"furrever {", true},
		{"log(1,", true},
		{"[1, 2", true},
		{"scratch = 1;", false},
		{"1 +", true},
	}
	for _, tc := range tests {
		if got := needsMore(tc.src); got != tc.want {
			t.Fatalf("needsMore(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestReplSessionPersistsState(t *testing.T) {
	var stdout, stderr bytes.Buffer
	session := &replSession{
		interp: interpreter.New(interpreter.WithStdout(&stdout)),
		stdout: &stdout,
		stderr: &stderr,
	}
	session.eval("scratch x = 20;")
	session.eval("x + 1")
	session.eval("purrhaps (clawful) { 1 }")
	session.eval("y")
	session.eval("scratch = ;")

	if stdout.String() != "21\nnull\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "error: identifier not found: y\n\t") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestReplInterpreterReadsThroughLineEditor(t *testing.T) {
	inProject(t, nil)
	p, err := loadProject(".")
	if err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	var prompts []string
	editor := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "Tom", nil
	}
	s := streams{stdin: strings.NewReader("from stdin\n"), stdout: &stdout, stderr: io.Discard}
	interp := p.newInterpreter(s, interpreter.WithLineReader(editor))

	val, err := interp.Run(`pawckage "nya:clawtility"; kibble("name? ")`)
	if err != nil {
		t.Fatal(err)
	}
	if val.String() != "Tom" || len(prompts) != 1 || prompts[0] != "name? " {
		t.Fatalf("kibble = %q, prompts %q", val.String(), prompts)
	}
}
