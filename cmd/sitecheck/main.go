// Package main is the sitecheck CLI: a concurrent website status
// checker with periodic monitoring, retries, and content validation.
//
// Usage:
//
//	sitecheck run https://example.com https://go.dev
//	sitecheck run -f urls.txt -n 80 -t 3s -r 2
//	sitecheck run -p 60s -H 'Server: nginx' --contains 'Welcome' https://example.com
//	sitecheck validate -f urls.txt
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set by the release build via ldflags
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "sitecheck",
	Short: "Concurrent website status checker",
	Long: `sitecheck probes a set of HTTP(S) endpoints concurrently, records
status code and latency per probe, and can repeat the cycle on a fixed
period while keeping cumulative uptime statistics.

Results are printed to stdout as JSON lines; a stats summary follows
each round on stderr.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitecheck %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
