package main

import (
	"fmt"
	"net"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/rtcore/smpsched/ctl"
	"github.com/rtcore/smpsched/scheduler"
	"github.com/rtcore/smpsched/scheduler/priority"
	"github.com/rtcore/smpsched/trace"
)

func newDaemonCmd() *cobra.Command {
	var socket string
	var processors int

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start the control-plane daemon over a fresh scheduler instance.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(socket, processors)
		},
	}
	cmd.Flags().StringVar(&socket, "socket", "/tmp/smpsched.sock", "unix socket path to listen on")
	cmd.Flags().IntVar(&processors, "processors", 2, "number of simulated processors")
	return cmd
}

func runDaemon(socket string, processors int) error {
	rs := priority.NewFIFO(priority.ByPriority)
	sch := scheduler.New(processors, rs)
	rec := trace.NewRecorder(4096)

	for i := 0; i < processors; i++ {
		idle := scheduler.NewThread(fmt.Sprintf("idle%d", i), 255)
		sch.StartIdle(idle, i)
	}

	srv := ctl.NewServer(sch, rs, rec)

	os.Remove(socket)
	l, err := net.Listen("unix", socket)
	if err != nil {
		return err
	}
	defer l.Close()
	glog.Infof("daemon: listening on %s", socket)

	for {
		conn, err := l.Accept()
		if err != nil {
			glog.Errorf("daemon: accept: %v", err)
			return err
		}
		go srv.Serve(conn)
	}
}
