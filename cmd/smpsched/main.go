// Command smpsched drives an in-process SMP scheduler instance: a
// scripted demo, a control-plane daemon, a client for that daemon, and
// a read-only HTTP inspector.
//
// One root *cobra.Command, one newXxxCmd constructor per subcommand.
// The root command's persistent flags absorb glog's stdlib
// flag.CommandLine flags (-v, -logtostderr, ...) so they're available
// on every subcommand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "smpsched",
		Short:         "A simulated SMP real-time thread scheduler.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newDaemonCmd())
	cmd.AddCommand(newCtlCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}
