package ecs

import "context"

// Job is a scheduled unit of work, grounded on system.go's Task interface
// (Execute(context.Context) error, GetID, GetPriority) but repurposed: §5
// states the scheduler is "a deterministic run-to-completion queue, not an
// async executor," so there is no pool of goroutines behind this, no
// WaitForCompletion, and no TaskResult channel. Execute still takes a
// context so a job can honor host-level cancellation during a long-running
// step (e.g. streaming I/O kicked off from within a system); the scheduler
// itself drives every job to completion synchronously and in FIFO order.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
	Priority() Priority
}

// JobFunc adapts a plain function to Job for callers that don't need an id
// or priority beyond the defaults.
type JobFunc struct {
	Name string
	Prio Priority
	Fn   func(ctx context.Context) error
}

func (j JobFunc) Execute(ctx context.Context) error { return j.Fn(ctx) }
func (j JobFunc) ID() string                        { return j.Name }
func (j JobFunc) Priority() Priority                { return j.Prio }

// scheduler is the per-world deterministic job queue (§4.5: "a world may
// explicitly call run_scheduled_jobs() to drain the scheduler between
// barriers").
type scheduler struct {
	jobs          []Job
	errorReport   func(error)
	reentryGuard  int
	maxReentry    int
}

func newScheduler(errorReport func(error)) *scheduler {
	return &scheduler{errorReport: errorReport, maxReentry: 64}
}

// schedule enqueues a job to run on the next drain.
func (s *scheduler) schedule(j Job) { s.jobs = append(s.jobs, j) }

// runScheduledJobs drains every queued job in FIFO order, reporting failures
// through errorReport rather than aborting the drain, and returns the number
// of jobs run. A job scheduling further jobs during its own Execute is
// permitted (mirrors message-bus re-entrancy, §5) but bounded by
// maxReentry drain passes to guard against an unbounded self-scheduling
// cycle.
func (s *scheduler) runScheduledJobs() uint32 {
	var ran uint32
	passes := 0
	for len(s.jobs) > 0 {
		passes++
		if passes > s.maxReentry {
			if s.errorReport != nil {
				s.errorReport(NewError(InvalidOperation, "scheduler exceeded %d re-entrant drain passes", s.maxReentry))
			}
			s.jobs = nil
			break
		}
		pending := s.jobs
		s.jobs = nil
		for _, j := range pending {
			if err := j.Execute(context.Background()); err != nil && s.errorReport != nil {
				s.errorReport(err)
			}
			ran++
		}
	}
	return ran
}
