package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// helpRule colours the parts of a help line matched by re. Rules with
// groups style the second group as a name and the third as text.
type helpRule struct {
	re    *regexp.Regexp
	whole func(string) string
}

var helpRules = []helpRule{
	// "Usage:", "Available Commands:", "Flags:"
	{re: regexp.MustCompile(`^\s*[A-Z][A-Za-z ]+:$`), whole: Info},
	// Use "rekap [command] --help" ...
	{re: regexp.MustCompile(`^\s*Use "`), whole: Silent},
	// "  -v, --verbose   enable debug logging"
	{re: regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`)},
	// "  recap       Classify an attendance sheet"
	{re: regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`)},
}

// colorizedHelpFunc returns a help function that colours cobra's default
// usage output line by line.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		origOut := cmd.OutOrStdout()

		var buf strings.Builder
		cmd.SetOut(&buf)
		cmd.InitDefaultHelpFlag()
		_ = cmd.Usage()
		cmd.SetOut(origOut)

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		for i, line := range lines {
			lines[i] = colorizeLine(line)
		}
		cmd.Print(strings.Join(lines, "\n") + "\n")
	}
}

func colorizeLine(line string) string {
	for _, r := range helpRules {
		if r.whole != nil {
			if r.re.MatchString(line) {
				return r.whole(line)
			}
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			return m[1] + Primary(m[2]) + Text(m[3])
		}
	}
	return Text(line)
}
