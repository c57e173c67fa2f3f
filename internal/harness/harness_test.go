package harness

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logAdapter "github.com/bft-labs/keycalc/internal/adapters/log"
	"github.com/bft-labs/keycalc/internal/adapters/local"
	"github.com/bft-labs/keycalc/internal/app"
	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// newSession builds a session whose remote evaluator answers locally, so
// runs are deterministic and stay online.
func newSession(remote ports.Evaluator) *app.Session {
	logger := logAdapter.NewNoopLogger()
	d := app.NewDispatcher(remote, local.NewEvaluator(), logger)
	return app.NewSession(d, nil, logger)
}

func onlineRemote() ports.Evaluator {
	return ports.EvaluatorFunc(func(_ context.Context, a, b float64, op domain.Operator) domain.Outcome {
		return local.Evaluate(a, b, op)
	})
}

func assertGolden(t *testing.T, r *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, r.Name, []byte(Transcript(r)))
}

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			res, err := Run(context.Background(), scenario, newSession(onlineRemote()))
			require.NoError(t, err)
			assert.True(t, res.Pass, "mismatches: %v", res.Errors)
			assertGolden(t, res)
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: wrong
steps:
  - key: "2"
    expect: {display: "3"}
expect:
  pending: "2 +"
`))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, newSession(onlineRemote()))
	require.NoError(t, err)

	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, `step 1 (2): display = "2", want "3"`, res.Errors[0])
	assert.Equal(t, `final: pending = "", want "2 +"`, res.Errors[1])
}

func TestRun_OfflineAfterServiceFailure(t *testing.T) {
	down := ports.EvaluatorFunc(func(context.Context, float64, float64, domain.Operator) domain.Outcome {
		return domain.Fail(domain.ServiceUnavailable())
	})

	s, err := ParseScenario([]byte(`
name: offline
steps:
  - key: "6"
    expect: {offline: false}
  - key: "-"
  - key: "4"
  - key: "="
    expect: {display: "2", offline: true}
`))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, newSession(down))
	require.NoError(t, err)
	assert.True(t, res.Pass, "mismatches: %v", res.Errors)

	transcript := Transcript(res)
	assert.True(t, strings.HasSuffix(transcript, "04 = => 2 (offline)\n"), transcript)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "steps:\n  - key: \"1\"\n",
			want: "name is required",
		},
		{
			name: "no steps",
			yaml: "name: empty\n",
			want: "steps list is required",
		},
		{
			name: "unknown key token",
			yaml: "name: bad\nsteps:\n  - key: \"sqrt\"\n",
			want: "steps[0]",
		},
		{
			name: "unknown field",
			yaml: "name: typo\nstep:\n  - key: \"1\"\n",
			want: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

// busyKeypad refuses every press.
type busyKeypad struct{}

func (busyKeypad) Press(context.Context, domain.Key) error { return domain.ErrBusy }
func (busyKeypad) Display() ports.Display { return ports.Display{Text: "0", Calculating: true} }

func TestRun_DroppedPress(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: busy
steps:
  - key: "1"
    expect: {dropped: true, calculating: true}
`))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, busyKeypad{})
	require.NoError(t, err)
	assert.True(t, res.Pass, "mismatches: %v", res.Errors)
	assert.Equal(t, "scenario: busy\n01 1 => 0 (dropped)\n", Transcript(res))
}
