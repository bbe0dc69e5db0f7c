package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// "Usage:", "Available Commands:", "Flags:", "Examples:"
	sectionHeaderRe = regexp.MustCompile(`^[A-Z][A-Za-z ]+:$`)
	// "  rx            Manage prescriptions"
	commandListingRe = regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`)
	// "  -u, --user string   profile to act on"
	flagLineRe = regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`)
	// "  wellnest rx add Aspirin --days Mon,Wed"
	exampleLineRe = regexp.MustCompile(`^( +)(wellnest .*)$`)
	footerRe      = regexp.MustCompile(`^Use "`)
)

// colorizedHelpFunc renders cobra's usage text with the CLI palette.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		origOut := cmd.OutOrStdout()

		var buf strings.Builder
		cmd.SetOut(&buf)
		cmd.InitDefaultHelpFlag()
		_ = cmd.Usage()
		cmd.SetOut(origOut)

		var result strings.Builder
		if desc := longOrShort(cmd); desc != "" {
			result.WriteString(Text(desc))
			result.WriteString("\n\n")
		}
		for _, line := range strings.Split(buf.String(), "\n") {
			result.WriteString(colorizeLine(line))
			result.WriteString("\n")
		}

		cmd.Print(strings.TrimRight(result.String(), "\n") + "\n")
	}
}

func longOrShort(cmd *cobra.Command) string {
	if cmd.Long != "" {
		return strings.TrimSpace(cmd.Long)
	}
	return cmd.Short
}

func colorizeLine(line string) string {
	trimmed := strings.TrimSpace(line)

	if sectionHeaderRe.MatchString(trimmed) {
		return Info(line)
	}
	if footerRe.MatchString(trimmed) {
		return Silent(line)
	}
	if m := exampleLineRe.FindStringSubmatch(line); m != nil {
		return m[1] + Silent(m[2])
	}
	if m := flagLineRe.FindStringSubmatch(line); m != nil {
		return m[1] + Primary(m[2]) + Text(m[3])
	}
	if m := commandListingRe.FindStringSubmatch(line); m != nil {
		return m[1] + Primary(m[2]) + Text(m[3])
	}
	return Text(line)
}
