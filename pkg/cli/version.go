package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// VersionOutput is the --json form of the version command.
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// String renders the human-readable two-line version banner.
func (v VersionOutput) String() string {
	version := v.Version
	if version != "" && version[0] != 'v' && version != "dev" && version != "(devel)" {
		version = "v" + version
	}
	return fmt.Sprintf("querygen %s (%s, %s)\n%s %s/%s", version, v.Commit, v.Date, v.Go, v.OS, v.Arch)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show querygen version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildVersion()
		return printResult(out, func() error {
			fmt.Println(out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildVersion prefers values injected with -ldflags and falls back to the
// module build info stamped by the go tool.
func buildVersion() VersionOutput {
	out := VersionOutput{
		Version: Version,
		Commit:  Commit,
		Date:    BuildDate,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = setting.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = setting.Value
			}
		case "vcs.modified":
			if setting.Value == "true" {
				out.Commit += "-dirty"
			}
		}
	}
	return out
}
