package interpreter

import (
	"io"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
)

func TestLibraryFunctions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"length string", `pawckage "nya:clawtility"; length("héllo")`, "5"},
		{"length array", `pawckage "nya:clawtility"; length([1, 2])`, "2"},
		{"length object", `pawckage "nya:clawtility"; length({"a": 1})`, "1"},
		{"length invalid", `pawckage "nya:clawtility"; length(5)`, "error: length: argument 1 must be a string, array or object, got number"},
		{"length arity", `pawckage "nya:clawtility"; length()`, "error: wrong number of arguments: expected 1, given 0"},

		{"pounce", `pawckage "nya:furrball"; pounce([1, 2, 3])`, "[1, 2]"},
		{"pounce empty", `pawckage "nya:furrball"; pounce([])`, "[]"},
		{"top", `pawckage "nya:furrball"; top([7, 8])`, "7"},
		{"top empty", `pawckage "nya:furrball"; top([])`, "null"},
		{"bottom", `pawckage "nya:furrball"; bottom([7, 8, 9])`, "[8, 9]"},
		{"push", `pawckage "nya:furrball"; push([1], 2)`, "[1, 2]"},
		{"push copies", `pawckage "nya:furrball"; scratch a = [1]; push(a, 2); a`, "[1]"},
		{"includes", `pawckage "nya:furrball"; [includes([1, [2]], [2]), includes([1], 3)]`, "[true, false]"},
		{"push type", `pawckage "nya:furrball"; push(1, 2)`, "error: push: argument 1 must be an array, got number"},
		{"map", `pawckage "nya:furrball"; map([1, 2, 3], pawction(x) { x * 2 })`, "[2, 4, 6]"},
		{"filter", `pawckage "nya:furrball"; filter([1, 2, 3, 4], pawction(x) { x % 2 == 0 })`, "[2, 4]"},
		{"reduce", `pawckage "nya:furrball"; reduce([1, 2, 3, 4], pawction(acc, x) { acc + x }, 0)`, "10"},
		{"map empty", `pawckage "nya:furrball"; map([], pawction(x) { x })`, "[]"},
		{"map error", `pawckage "nya:furrball"; map([1], pawction(x) { x + "s" })`, "error: type mismatch: number + string"},

		{"replace", `pawckage "nya:whiskers"; replace("a-b-c", "-", "+")`, "a+b+c"},
		{"replace renders", `pawckage "nya:whiskers"; replace("v1", 1, 2)`, "v2"},
		{"in_whiskers", `pawckage "nya:whiskers"; in_whiskers([1.5, "a"])`, "[1.5, a]"},
		{"upper", `pawckage "nya:whiskers"; upper("purr")`, "PURR"},
		{"lower", `pawckage "nya:whiskers"; lower("HISS")`, "hiss"},
		{"trim", `pawckage "nya:whiskers"; trim("  nap  ")`, "nap"},
		{"split", `pawckage "nya:whiskers"; split("a,b,,c", ",")`, "[a, b, , c]"},
		{"upper type", `pawckage "nya:whiskers"; upper(1)`, "error: upper: argument 1 must be a string, got number"},

		{"floor", `pawckage "nya:catculator"; floor(2.7)`, "2"},
		{"ceil", `pawckage "nya:catculator"; ceil(2.1)`, "3"},
		{"round", `pawckage "nya:catculator"; round(2.5)`, "3"},
		{"abs", `pawckage "nya:catculator"; abs(-3)`, "3"},
		{"sqrt", `pawckage "nya:catculator"; sqrt(16)`, "4"},
		{"pow", `pawckage "nya:catculator"; pow(2, 10)`, "1024"},
		{"log2", `pawckage "nya:catculator"; log2(8)`, "3"},
		{"log10", `pawckage "nya:catculator"; log10(1)`, "0"},
		{"sin", `pawckage "nya:catculator"; sin(0)`, "0"},
		{"cos", `pawckage "nya:catculator"; cos(0)`, "1"},
		{"modulo negative", `pawckage "nya:catculator"; modulo(-1, 3)`, "2"},
		{"percent negative", `-1 % 3`, "-1"},
		{"PI", `pawckage "nya:catculator"; PI`, "3.141592653589793"},
		{"E", `pawckage "nya:catculator"; E > 2.71`, "true"},
		{"MAX_INT", `pawckage "nya:catculator"; MAX_INT > 1000000000000`, "true"},
		{"random range", `pawckage "nya:catculator"; random(5, 1)`, "error: random: empty range [5, 1)"},

		{"choice empty", `pawckage "nya:yarnball"; choice([])`, "error: choice: cannot choose from an empty array"},
		{"choice single", `pawckage "nya:yarnball"; choice([9])`, "9"},
		{"randint degenerate", `pawckage "nya:yarnball"; randint(4, 4)`, "4"},
		{"randint empty", `pawckage "nya:yarnball"; randint(5, 1)`, "error: randint: unusable range [5, 1]"},
		{"uniform degenerate", `pawckage "nya:yarnball"; uniform(2, 2)`, "2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			if got := h.eval(t, tc.source); got != tc.want {
				t.Fatalf("%s = %q, want %q", tc.source, got, tc.want)
			}
		})
	}
}

func TestPrintingNatives(t *testing.T) {
	h := newHarness(t)
	h.eval(t, `meow("hi", 1); log([1, 2], {"a": purrfect}); log("plain");`)
	want := "Meow! hi 1\n[1, 2] {a: true}\nplain\n"
	if got := h.stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestKibbleReadsLines(t *testing.T) {
	h := newHarness(t, WithStdin(strings.NewReader("Tom\r\nJerry")))
	if got := h.eval(t, `pawckage "nya:clawtility"; kibble("name? ")`); got != "Tom" {
		t.Fatalf("first line = %q", got)
	}
	if got := h.eval(t, `kibble()`); got != "Jerry" {
		t.Fatalf("unterminated last line = %q", got)
	}
	if got := h.eval(t, `kibble()`); got != "null" {
		t.Fatalf("at EOF = %q, want null", got)
	}
	if got := h.stdout.String(); got != "name? " {
		t.Fatalf("prompt = %q", got)
	}
}

func TestKibbleUsesLineReader(t *testing.T) {
	lines := []string{"Tom", "Jerry"}
	var prompts []string
	reader := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
	h := newHarness(t, WithStdin(strings.NewReader("ignored\n")), WithLineReader(reader))

	got := h.eval(t, `pawckage "nya:clawtility"; [kibble("name? "), kibble(), kibble()]`)
	if got != "[Tom, Jerry, null]" {
		t.Fatalf("kibble results = %q", got)
	}
	if strings.Join(prompts, "|") != "name? ||" {
		t.Fatalf("prompts = %q", prompts)
	}
	if h.stdout.Len() != 0 {
		t.Fatalf("prompt echoed to stdout: %q", h.stdout.String())
	}
}

func TestNapSleeps(t *testing.T) {
	var slept []time.Duration
	h := newHarness(t, WithSleep(func(d time.Duration) { slept = append(slept, d) }))
	h.eval(t, `pawckage "nya:clawtility"; nap(25); nap(0); nap(1.5);`)
	if len(slept) != 2 || slept[0] != 25*time.Millisecond || slept[1] != 1500*time.Microsecond {
		t.Fatalf("slept = %v", slept)
	}
	if got := h.eval(t, `nap("x")`); got != "error: nap: argument 1 must be a number, got string" {
		t.Fatalf("got %q", got)
	}
}

func TestScratchpad(t *testing.T) {
	h := newHarness(t)
	if err := util.WriteFile(h.fs, "notes/cat.txt", []byte("purr"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.eval(t, `pawckage "nya:scratchpad";`)

	tests := []struct {
		source string
		want   string
	}{
		{`readFile("notes/cat.txt")`, "purr"},
		{`exists("notes/cat.txt")`, "true"},
		{`exists("nope.txt")`, "false"},
		{`writeFile("out.txt", [1, 2])`, "null"},
		{`readFile("out.txt")`, "[1, 2]"},
		{`writeFile(1, "x")`, "error: writeFile: argument 1 must be a string, got number"},
	}
	for _, tc := range tests {
		if got := h.eval(t, tc.source); got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.source, got, tc.want)
		}
	}
	if got := h.eval(t, `readFile("nope.txt")`); !strings.HasPrefix(got, "error: readFile: couldn't read nope.txt") {
		t.Fatalf("missing file: %q", got)
	}
}

func TestRandomNativesStayInRange(t *testing.T) {
	h := newHarness(t)
	h.eval(t, `pawckage "nya:yarnball"; scratch rand = random; pawckage "nya:catculator";`)
	for n := 0; n < 200; n++ {
		got := h.eval(t, "randint(1, 6)")
		v, err := strconv.Atoi(got)
		if err != nil || v < 1 || v > 6 {
			t.Fatalf("randint(1, 6) = %q", got)
		}
		f, err := strconv.ParseFloat(h.eval(t, "rand()"), 64)
		if err != nil || f < 0 || f >= 1 {
			t.Fatalf("random() out of range: %v %v", f, err)
		}
		f, err = strconv.ParseFloat(h.eval(t, "random(10, 20)"), 64)
		if err != nil || f < 10 || f >= 20 {
			t.Fatalf("random(10, 20) out of range: %v %v", f, err)
		}
		f, err = strconv.ParseFloat(h.eval(t, "uniform(-1, 1)"), 64)
		if err != nil || f < -1 || f >= 1 {
			t.Fatalf("uniform(-1, 1) out of range: %v %v", f, err)
		}
	}
}

func TestRandomNativesAreSeedable(t *testing.T) {
	draw := func() string {
		h := newHarness(t, WithRandSource(rand.NewPCG(42, 7)))
		return h.eval(t, `pawckage "nya:yarnball"; [randint(1, 1000), choice([1, 2, 3, 4]), shuffle([1, 2, 3, 4, 5])]`)
	}
	if a, b := draw(), draw(); a != b {
		t.Fatalf("same seed produced %q and %q", a, b)
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	h := newHarness(t)
	h.eval(t, `pawckage "nya:yarnball"; scratch src = [5, 3, 1, 4, 2];`)
	got := h.eval(t, `shuffle(src)`)
	parts := strings.Split(strings.Trim(got, "[]"), ", ")
	sort.Strings(parts)
	if strings.Join(parts, ",") != "1,2,3,4,5" {
		t.Fatalf("shuffle lost elements: %q", got)
	}
	if src := h.eval(t, "src"); src != "[5, 3, 1, 4, 2]" {
		t.Fatalf("shuffle mutated its input: %q", src)
	}
}
