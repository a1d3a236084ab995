package main

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/rtcore/smpsched/httpinspect"
	"github.com/rtcore/smpsched/scheduler"
	"github.com/rtcore/smpsched/scheduler/priority"
	"github.com/rtcore/smpsched/trace"
)

func newServeCmd() *cobra.Command {
	var addr string
	var processors int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a read-only HTTP inspector over a fresh scheduler instance.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, processors)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().IntVar(&processors, "processors", 2, "number of simulated processors")
	return cmd
}

func runServe(addr string, processors int) error {
	rs := priority.NewFIFO(priority.ByPriority)
	sch := scheduler.New(processors, rs)
	rec := trace.NewRecorder(4096)
	sch.Hook = rec.Hook

	for i := 0; i < processors; i++ {
		idle := scheduler.NewThread(fmt.Sprintf("idle%d", i), 255)
		sch.StartIdle(idle, i)
	}

	h := httpinspect.New(sch, rs, rec)
	glog.Infof("serve: listening on %s", addr)
	return http.ListenAndServe(addr, h)
}
