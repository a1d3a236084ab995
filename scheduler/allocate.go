package scheduler

// allocateProcessor assigns scheduled to a processor. If scheduled is
// already executing on one of this instance's processors it stays
// there and that processor's previous heir moves instead; otherwise
// scheduled itself moves. Unless the moving thread is victim, it
// becomes the heir of victim's processor. Apart from StartIdle seeding
// each processor's first heir and Processor.Dispatch clearing
// dispatchNecessary, this function (through updateHeir) is the only
// writer of Processor.heir/dispatchNecessary.
//
// scheduled is the winner of a recent decision; victim is the loser
// previously occupying the scheduled slot, or the thread just
// extracted. Precondition: called only with the scheduler instance's
// lock held ("interrupts disabled" in the original RTOS maps to
// "caller holds the lock" in this in-memory model).
func (s *Scheduler) allocateProcessor(scheduled, victim *Thread) {
	scheduled.Node().Transition(Scheduled)

	var heir *Thread
	if p := scheduled.CPU(); scheduled.Executing() && p.instance == s {
		// scheduled is already executing on one of our processors:
		// keep it there. Its previous heir is displaced and must
		// migrate somewhere else.
		heir = p.Heir()
		s.updateHeir(p, scheduled)
	} else {
		// Either not executing anywhere, or executing on a processor
		// this instance doesn't own: force a migration onto ours.
		heir = scheduled
	}

	if heir != victim {
		victimCPU := victim.CPU()
		if victimCPU == nil {
			panic("scheduler: AllocateProcessor victim has no assigned processor")
		}
		heir.SetCPU(victimCPU)
		s.updateHeir(victimCPU, heir)
	}
}

// updateHeir writes heir, then — separated by the ordering guarantee
// of Go's sequentially-consistent atomics — writes dispatchNecessary,
// only if it was false, and only then considers sending an IPI, and
// only if the target processor isn't the one currently executing this
// operation.
func (s *Scheduler) updateHeir(p *Processor, heir *Thread) {
	p.heir.Store(heir)

	if p.dispatchNecessary.CompareAndSwap(false, true) {
		if p.id != s.CurrentProcessor && s.SendIPI != nil {
			s.SendIPI(p.id)
		}
	}
}
