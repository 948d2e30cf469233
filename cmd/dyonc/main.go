// cmd/dyonc/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"

	"dyonc/internal/ast"
	"dyonc/internal/cache"
	"dyonc/internal/devserver"
	"dyonc/internal/golden"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main's body, split out so cmd/dyonc's own tests can drive it
// in-process via testscript's RunMain instead of building a real binary.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Printf("dyonc %s\n", version)
	case "emit":
		runEmit(args[1:])
	case "golden":
		runGolden(args[1:])
	case "serve":
		runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		showUsage()
		return 1
	}
	return 0
}

func showUsage() {
	fmt.Println("dyonc - AST-directed source-to-source code generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dyonc emit <ast.json>         Emit TL text for a single AST file")
	fmt.Println("  dyonc golden <dir>            Compare every *.txtar fixture under dir")
	fmt.Println("  dyonc serve [addr]            Run the websocket transpile service")
	fmt.Println("  dyonc --version               Show version")
	fmt.Println("  dyonc --help                  Show this message")
}

func runEmit(args []string) {
	if len(args) < 1 {
		log.Fatal("emit requires a path to an AST JSON file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("read %s: %v", args[0], err)
	}
	module, err := ast.Decode(data)
	if err != nil {
		log.Fatalf("decode %s: %v", args[0], err)
	}
	text, err := golden.Emit(module)
	if err != nil {
		log.Fatalf("emit %s: %v", args[0], err)
	}
	fmt.Print(text)
}

func runGolden(args []string) {
	dir := "testdata/golden"
	if len(args) > 0 {
		dir = args[0]
	}
	mismatches, err := golden.CompareGolden(dir)
	if err != nil {
		log.Fatalf("golden: %v", err)
	}
	if len(mismatches) == 0 {
		fmt.Printf("%s: all fixtures match\n", dir)
		return
	}
	color := isatty.IsTerminal(os.Stdout.Fd())
	for _, m := range mismatches {
		reportMismatch(m, color)
	}
	fmt.Fprintf(os.Stderr, "\n%d fixture(s) did not match\n", len(mismatches))
	os.Exit(1)
}

func reportMismatch(m golden.Mismatch, color bool) {
	if m.Err != nil {
		fmt.Printf("FAIL %s: %v\n", m.Fixture, m.Err)
		return
	}
	fmt.Printf("FAIL %s\n", m.Fixture)
	if color {
		fmt.Println("\033[31m--- expected\033[0m")
		fmt.Println(m.Expected)
		fmt.Println("\033[32m+++ got\033[0m")
		fmt.Println(m.Got)
	} else {
		fmt.Println("--- expected")
		fmt.Println(m.Expected)
		fmt.Println("+++ got")
		fmt.Println(m.Got)
	}
}

func runServe(args []string) {
	addr := ":8787"
	if len(args) > 0 {
		addr = args[0]
	}
	cachePath := os.Getenv("DYONC_CACHE_PATH")
	if cachePath == "" {
		cachePath = ":memory:"
	}
	c, err := cache.Open(cachePath)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}
	defer c.Close()

	srv := devserver.New(c)
	fmt.Printf("dyonc serve: listening on %s\n", addr)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
