package pipeline

import "context"

// Flow is an ordered, immutable composition of stages. A flow is built
// once at startup and shared by every request that references it; it holds
// no per-request state and is safe for concurrent use.
type Flow struct {
	stages []Stage
}

// NewFlow builds a flow executing the given stages in exactly the order
// they are passed. The slice is copied; later mutation of the caller's
// slice has no effect.
func NewFlow(stages ...Stage) *Flow {
	owned := make([]Stage, len(stages))
	copy(owned, stages)
	return &Flow{stages: owned}
}

// Stages returns the number of composed stages.
func (f *Flow) Stages() int {
	return len(f.stages)
}

// Run executes each stage's Resolve in sequence. The abort flag is checked
// before every stage, so a stage that aborts stops all subsequent stages
// without raising an error. A stage error stops execution immediately and
// is returned unchanged; if a stage both aborts and errors, the error
// takes precedence.
func (f *Flow) Run(ctx context.Context, rc *RequestContext) error {
	for _, s := range f.stages {
		if rc.Aborted() {
			return nil
		}
		if err := s.Resolve(ctx, rc); err != nil {
			return err
		}
	}
	return nil
}
