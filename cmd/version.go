// =============================================================================
// Seatmap Converter - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   seatmap version          - name, version, commit and Go runtime
//   seatmap version --short  - version only
//
// Version and BuildDate can be stamped with ldflags; otherwise the module
// version and VCS revision recorded by the Go toolchain are reported.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build stamps, e.g.
//   -ldflags "-X github.com/ginjaninja78/seatmap-converter/cmd.Version=1.2.0"
var (
	Version   = ""
	BuildDate = ""
)

// shortVersion prints only the version string.
var shortVersion bool

// buildInfo describes the running binary.
type buildInfo struct {
	version  string
	revision string
	date     string
	modified bool
}

// readBuildInfo merges ldflags stamps with what the toolchain embedded.
func readBuildInfo() buildInfo {
	info := buildInfo{version: Version, date: BuildDate}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.revision = s.Value
			case "vcs.time":
				if info.date == "" {
					info.date = s.Value
				}
			case "vcs.modified":
				info.modified = s.Value == "true"
			}
		}
	}
	if info.version == "" {
		info.version = "dev"
	}
	return info
}

func (b buildInfo) write(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, b.version)
		return
	}
	fmt.Fprintf(w, "Seatmap Converter %s\n", b.version)
	if b.revision != "" {
		rev := b.revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if b.modified {
			rev += "-dirty"
		}
		fmt.Fprintf(w, "  commit: %s\n", rev)
	}
	if b.date != "" {
		fmt.Fprintf(w, "  built:  %s\n", b.date)
	}
	fmt.Fprintf(w, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		readBuildInfo().write(cmd.OutOrStdout(), shortVersion)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "Print the version number only")
	rootCmd.AddCommand(versionCmd)
}
