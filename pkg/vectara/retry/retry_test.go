package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

func transportFailure() vectara.Outcome {
	return vectara.TransportFailure(&vectara.TransportError{Op: "Query", StatusCode: 503})
}

func fastPolicy(n uint64) Policy {
	return Policy{MaxRetries: n, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestDo(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		outcomes  []vectara.Outcome
		wantCalls int
		wantKind  vectara.Kind
	}{
		{
			name:      "disabled",
			policy:    fastPolicy(0),
			outcomes:  []vectara.Outcome{transportFailure()},
			wantCalls: 1,
			wantKind:  vectara.KindTransportError,
		},
		{
			name:      "recovers after transport errors",
			policy:    fastPolicy(3),
			outcomes:  []vectara.Outcome{transportFailure(), transportFailure(), vectara.Succeeded("Query", vectara.Payload{})},
			wantCalls: 3,
			wantKind:  vectara.KindSuccess,
		},
		{
			name:      "gives up",
			policy:    fastPolicy(2),
			outcomes:  []vectara.Outcome{transportFailure(), transportFailure(), transportFailure(), transportFailure()},
			wantCalls: 3,
			wantKind:  vectara.KindTransportError,
		},
		{
			name:   "application errors are final",
			policy: fastPolicy(5),
			outcomes: []vectara.Outcome{
				vectara.ApplicationFailure(&vectara.ApplicationError{Op: "Query", Statuses: []vectara.Status{{Code: "FAILURE"}}}),
			},
			wantCalls: 1,
			wantKind:  vectara.KindApplicationError,
		},
		{
			name:      "success is final",
			policy:    fastPolicy(5),
			outcomes:  []vectara.Outcome{vectara.Succeeded("Query", vectara.Payload{})},
			wantCalls: 1,
			wantKind:  vectara.KindSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			out := Do(context.Background(), tt.policy, func(context.Context) vectara.Outcome {
				o := tt.outcomes[calls]
				calls++
				return o
			})
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantKind, out.Kind)
		})
	}
}

func TestDo_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	out := Do(ctx, Policy{MaxRetries: 10, InitialInterval: time.Hour, MaxInterval: time.Hour},
		func(context.Context) vectara.Outcome {
			calls++
			cancel()
			return transportFailure()
		})
	assert.Equal(t, 1, calls)
	assert.Equal(t, vectara.KindTransportError, out.Kind)
}
