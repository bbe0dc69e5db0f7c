package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Flyrell/wellnest/internal/cli"
	"github.com/Flyrell/wellnest/internal/clidoc"
)

func main() {
	outDir := flag.String("out", "docs", "directory to write commands.md and commands.html into")
	flag.Parse()

	md := clidoc.Markdown(cli.Root())
	page, err := clidoc.HTML([]byte(md), "wellnest command reference")
	if err != nil {
		fatal("rendering HTML: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal("creating %s: %v", *outDir, err)
	}
	for name, data := range map[string][]byte{
		"commands.md":   []byte(md),
		"commands.html": page,
	} {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fatal("writing %s: %v", path, err)
		}
		fmt.Printf("  generated %s\n", path)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
