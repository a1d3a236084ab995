package main

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/rtcore/smpsched/internal/cpuaffinity"
	"github.com/rtcore/smpsched/scheduler"
	"github.com/rtcore/smpsched/scheduler/priority"
	"github.com/rtcore/smpsched/trace"
)

func newDemoCmd() *cobra.Command {
	var processors int
	var pin string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of enqueue/extract/schedule/block.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(processors, pin)
		},
	}
	cmd.Flags().IntVar(&processors, "processors", 2, "number of simulated processors")
	cmd.Flags().StringVar(&pin, "pin", "", "Linux CPU list to pin the demo's calling OS thread to, e.g. 0-3")
	return cmd
}

func runDemo(processors int, pin string) error {
	if pin != "" {
		set, err := cpuaffinity.Parse(pin)
		if err != nil {
			return fmt.Errorf("demo: --pin: %w", err)
		}
		if err := cpuaffinity.BindSet(set); err != nil {
			glog.Warningf("demo: could not bind to %s: %v", pin, err)
		} else {
			glog.Infof("demo: pinned to %s", cpuaffinity.String(set))
		}
	}

	rs := priority.NewFIFO(priority.ByPriority)
	sch := scheduler.New(processors, rs)
	rec := trace.NewRecorder(256)
	sch.Hook = rec.Hook
	sch.SendIPI = func(cpu int) { glog.Infof("demo: IPI -> processor %d", cpu) }

	idles := make([]*scheduler.Thread, processors)
	for i := range idles {
		idles[i] = scheduler.NewThread(fmt.Sprintf("idle%d", i), 255)
		sch.StartIdle(idles[i], i)
	}
	report(sch, rs, "seeded idles")

	a := scheduler.NewThread("A", 1)
	b := scheduler.NewThread("B", 2)
	c := scheduler.NewThread("C", 3)

	sch.Enqueue(a)
	report(sch, rs, "enqueue(A, pri=1)")

	sch.Enqueue(c)
	report(sch, rs, "enqueue(C, pri=3)")

	sch.Enqueue(b)
	report(sch, rs, "enqueue(B, pri=2)")

	sch.Extract(a)
	report(sch, rs, "extract(A)")

	a.SetPriority(4)
	sch.Enqueue(a)
	report(sch, rs, "enqueue(A) at lowered priority 4")

	sch.Block(c)
	report(sch, rs, "block(C)")

	fmt.Printf("\nrecorded %d events\n", len(rec.Since(0)))
	return nil
}

func report(sch *scheduler.Scheduler, rs *priority.Set, step string) {
	snap := trace.Take(sch, rs)
	fmt.Printf("-- %s --\n", step)
	fmt.Printf("  scheduled: %v\n", snap.Scheduled)
	fmt.Printf("  ready:     %v\n", snap.Ready)
	for _, p := range snap.Processors {
		fmt.Printf("  processor %d: heir=%s dispatch_necessary=%v\n", p.ID, p.HeirID, p.DispatchNecessary)
	}
}
