package base

import (
	"context"
	"fmt"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/retry"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rpc"
)

// Workflow runs a sequence of calls with one credential and stops at the
// first failure: once a step fails, later steps are skipped and the run
// exits with status 1.
type Workflow struct {
	s    *Session
	cred vectara.Credential
	err  error
}

// Workflow starts a workflow that authenticates with cred.
func (s *Session) Workflow(cred vectara.Credential) *Workflow {
	return &Workflow{s: s, cred: cred}
}

// REST calls ep over REST as the next step.
func (w *Workflow) REST(ctx context.Context, step string, ep vectara.Endpoint, body any) (vectara.Outcome, bool) {
	if w.err != nil {
		return vectara.Outcome{}, false
	}
	caller, err := w.s.REST()
	if err != nil {
		w.Fail(step, err)
		return vectara.Outcome{}, false
	}
	return w.run(ctx, step, func(ctx context.Context) vectara.Outcome {
		return caller.Call(ctx, w.s.Config.CustomerID, w.cred, ep, body)
	})
}

// GRPC calls ep over gRPC as the next step.
func (w *Workflow) GRPC(ctx context.Context, step string, ep vectara.Endpoint, body any, opts ...rpc.CallOption) (vectara.Outcome, bool) {
	if w.err != nil {
		return vectara.Outcome{}, false
	}
	caller, err := w.s.GRPC()
	if err != nil {
		w.Fail(step, err)
		return vectara.Outcome{}, false
	}
	return w.run(ctx, step, func(ctx context.Context) vectara.Outcome {
		return caller.Call(ctx, w.s.Config.CustomerID, w.cred, ep, body, opts...)
	})
}

func (w *Workflow) run(ctx context.Context, step string, call func(context.Context) vectara.Outcome) (vectara.Outcome, bool) {
	out := retry.Do(ctx, w.s.retry, call)
	if !out.OK() {
		w.Fail(step, out.Err())
		return out, false
	}
	w.s.Log.Info("step succeeded", "step", step, "endpoint", out.Endpoint)
	return out, true
}

// Fail records err as the failure of step and reports it.
func (w *Workflow) Fail(step string, err error) {
	if w.err != nil {
		return
	}
	w.err = fmt.Errorf("%s: %w", step, err)
	w.s.UI.Error(fmt.Sprintf("%s failed: %v", step, err))
}

// Print reports the result of step. A result that cannot be rendered fails
// the workflow.
func (w *Workflow) Print(step string, v any) bool {
	if w.err != nil {
		return false
	}
	w.s.UI.Info(fmt.Sprintf("%s:", step))
	if err := w.s.Print(v); err != nil {
		w.Fail(step, err)
		return false
	}
	return true
}

// Err returns the first failure, nil when every step succeeded.
func (w *Workflow) Err() error { return w.err }

// ExitCode returns 0 when every step succeeded and 1 otherwise.
func (w *Workflow) ExitCode() int {
	if w.err != nil {
		return 1
	}
	return 0
}

// Result decodes the payload of a successful step into T. A payload that
// does not decode fails the workflow.
func Result[T any](w *Workflow, step string, out vectara.Outcome, ok bool) (*T, bool) {
	if !ok {
		return nil, false
	}
	v, err := vectara.Decode[T](out)
	if err != nil {
		w.Fail(step, err)
		return nil, false
	}
	return v, true
}
