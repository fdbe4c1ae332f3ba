package main

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/hamed0406/sitecheck/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [urls...]",
	Short: "Check a run file or URL list without probing anything",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "YAML run file to validate")
	validateCmd.Flags().StringP("file", "f", "", "URL list file to validate")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ok := func(msg string) { fmt.Fprintln(cmd.OutOrStdout(), "✔", msg) }
	bad := 0
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		bad++
	}

	urls := append([]string(nil), args...)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			fail(err.Error())
		} else {
			ok(fmt.Sprintf("%s: %d target(s)", path, len(f.Targets)))
			if f.Cron != "" {
				if _, err := cron.ParseStandard(f.Cron); err != nil {
					fail(fmt.Sprintf("cron: %v", err))
				} else {
					ok("cron=" + f.Cron)
				}
			}
		}
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		fromFile, err := config.ReadURLFile(path)
		if err != nil {
			fail(err.Error())
		} else {
			urls = append(urls, fromFile...)
		}
	}

	for _, raw := range urls {
		if config.IsValidHTTPURL(raw) {
			ok(config.NormalizeHTTPURL(raw))
		} else {
			fail(fmt.Sprintf("not an http(s) URL: %q", raw))
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d problem(s) found", bad)
	}
	ok("validation passed")
	return nil
}
