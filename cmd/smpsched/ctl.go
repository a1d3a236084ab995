package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtcore/smpsched/ctl"
)

func newCtlCmd() *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:   "ctl",
		Short: "Talk to a running smpsched daemon.",
	}
	cmd.PersistentFlags().StringVar(&socket, "socket", "/tmp/smpsched.sock", "unix socket path of the daemon")

	cmd.AddCommand(newCtlEnqueueCmd(&socket))
	cmd.AddCommand(newCtlExtractCmd(&socket))
	cmd.AddCommand(newCtlBlockCmd(&socket))
	cmd.AddCommand(newCtlSnapshotCmd(&socket))
	return cmd
}

func newCtlEnqueueCmd(socket *string) *cobra.Command {
	var priority int
	cmd := &cobra.Command{
		Use:   "enqueue THREAD_ID",
		Short: "Enqueue a thread by ID, creating it if unknown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(*socket, func(c *ctl.Client) error {
				result, err := c.Enqueue(args[0], priority)
				return printResult(result, err)
			})
		},
	}
	cmd.Flags().IntVar(&priority, "priority", 10, "scheduling priority (lower outranks higher)")
	return cmd
}

func newCtlExtractCmd(socket *string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract THREAD_ID",
		Short: "Extract a known thread.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(*socket, func(c *ctl.Client) error {
				result, err := c.Extract(args[0])
				return printResult(result, err)
			})
		},
	}
}

func newCtlBlockCmd(socket *string) *cobra.Command {
	return &cobra.Command{
		Use:   "block THREAD_ID",
		Short: "Block a known thread.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(*socket, func(c *ctl.Client) error {
				result, err := c.Block(args[0])
				return printResult(result, err)
			})
		},
	}
}

func newCtlSnapshotCmd(socket *string) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print a snapshot of the daemon's live scheduler instance.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(*socket, func(c *ctl.Client) error {
				result, err := c.Snapshot()
				return printResult(result, err)
			})
		},
	}
}

func withClient(socket string, fn func(*ctl.Client) error) error {
	c, err := ctl.Dial(socket)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func printResult(result ctl.Result, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(string(result.Snapshot))
	return nil
}
