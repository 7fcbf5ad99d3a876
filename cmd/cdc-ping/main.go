// Command cdc-ping opens a CDC reader session against a ScyllaDB cluster
// and reports what the coordinator node says about itself.
//
// It is meant for checking contact points, credentials and trust/key
// stores before deploying a CDC consumer.
//
// # Usage
//
//	cdc-ping ping --contact-point 10.0.0.1:9042 --user cdc_reader --password secret
//	cdc-ping ping --config /etc/cdc/cdc.yaml --local-dc dc1
//
// Every flag may also be set through the environment with the CDCPING_
// prefix, e.g. CDCPING_PASSWORD or CDCPING_KEYSTORE_PASSWORD.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cdc-ping",
		Short:         "Check connectivity to a CDC-enabled ScyllaDB cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("cdc-ping v%s\n", version)
			cmd.Printf("Go version: %s\n", runtime.Version())
			cmd.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})
	root.AddCommand(newPingCmd())

	return root
}
