package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const cliToolVersion = "meow 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s := streams{stdin: stdin, stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		return runRepl(nil, s)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		switch len(args) {
		case 1:
			return runEntry(s)
		case 2:
			return runFile(args[1], s)
		default:
			fmt.Fprintln(stderr, "meow run expects at most one file")
			printUsage(stderr)
			return 1
		}
	case "repl":
		return runRepl(args[1:], s)
	case "deps":
		return runDeps(args[1:], s)
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(stderr, "unknown flag %s\n", args[0])
			printUsage(stderr)
			return 1
		}
		return runFile(args[0], s)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  meow                 start the REPL")
	fmt.Fprintln(w, "  meow repl            start the REPL")
	fmt.Fprintln(w, "  meow run             run the entry script named in meow.yml")
	fmt.Fprintln(w, "  meow run <file.meow> run a script")
	fmt.Fprintln(w, "  meow <file.meow>     run a script")
	fmt.Fprintln(w, "  meow deps install    fetch dependencies from meow.yml and write meow.lock")
	fmt.Fprintln(w, "  meow --version")
}
