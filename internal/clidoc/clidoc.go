// Package clidoc renders a command reference for a cobra command tree as
// Markdown and as a standalone HTML page.
package clidoc

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown returns the reference for root and every visible subcommand,
// depth first in the order cobra lists them.
func Markdown(root *cobra.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s command reference\n\n", root.Name())
	if root.Long != "" {
		b.WriteString(strings.TrimSpace(root.Long))
		b.WriteString("\n\n")
	}
	writeFlags(&b, "Global flags", root.PersistentFlags())

	for _, c := range root.Commands() {
		writeCommand(&b, c)
	}
	return b.String()
}

func writeCommand(b *strings.Builder, cmd *cobra.Command) {
	if !cmd.IsAvailableCommand() || cmd.IsAdditionalHelpTopicCommand() {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", cmd.CommandPath())
	if cmd.Long != "" {
		b.WriteString(strings.TrimSpace(cmd.Long))
	} else {
		b.WriteString(cmd.Short)
	}
	b.WriteString("\n\n")

	if cmd.Runnable() {
		fmt.Fprintf(b, "```\n%s\n```\n\n", cmd.UseLine())
	}
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(b, "Aliases: `%s`\n\n", strings.Join(cmd.Aliases, "`, `"))
	}
	writeFlags(b, "Flags", cmd.NonInheritedFlags())

	if cmd.Example != "" {
		fmt.Fprintf(b, "Examples:\n\n```\n%s\n```\n\n", strings.TrimRight(dedent(cmd.Example), "\n"))
	}

	var subs []string
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, fmt.Sprintf("- [%s](#%s): %s", sub.Name(), anchor(sub.CommandPath()), sub.Short))
		}
	}
	if len(subs) > 0 {
		b.WriteString("Subcommands:\n\n")
		b.WriteString(strings.Join(subs, "\n"))
		b.WriteString("\n\n")
	}

	for _, sub := range cmd.Commands() {
		writeCommand(b, sub)
	}
}

func writeFlags(b *strings.Builder, title string, flags *pflag.FlagSet) {
	var rows []string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := "`--" + f.Name + "`"
		if f.Shorthand != "" {
			name = "`-" + f.Shorthand + "`, " + name
		}
		def := f.DefValue
		if def == "" || (f.Value.Type() == "bool" && def == "false") {
			def = ""
		} else {
			def = "`" + def + "`"
		}
		rows = append(rows, fmt.Sprintf("| %s | %s | %s |", name, def, escapeCell(f.Usage)))
	})
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n\n| Flag | Default | Description |\n|---|---|---|\n", title)
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
}

var nonAnchor = regexp.MustCompile(`[^a-z0-9-]+`)

// anchor mirrors goldmark's auto heading IDs for simple ASCII headings.
func anchor(heading string) string {
	return nonAnchor.ReplaceAllString(strings.ReplaceAll(strings.ToLower(heading), " ", "-"), "")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, "  ")
	}
	return strings.Join(lines, "\n")
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
pre { background: #f4f4f4; padding: .75rem; overflow-x: auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: .25rem .5rem; text-align: left; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// HTML converts a Markdown reference into a complete HTML page.
func HTML(markdown []byte, title string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var content bytes.Buffer
	if err := md.Convert(markdown, &content); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title   string
		Content template.HTML
	}{title, template.HTML(content.String())})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
