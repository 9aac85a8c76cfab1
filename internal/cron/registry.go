package cron

import "context"

// Job is one scheduled unit of work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a worker runs each tick.
type Registry struct {
	jobs []Job
}

// NewRegistry constructs an empty job registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a job. Registration order is execution order.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns the registered jobs.
func (r *Registry) Jobs() []Job {
	return r.jobs
}
