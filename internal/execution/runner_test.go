package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharaoh/internal/domain"
	"pharaoh/internal/logging"
)

// echoExecutor answers each command with its own text on stdout after an
// optional per-command delay, failing for commands listed in fail.
type echoExecutor struct {
	delays map[string]time.Duration
	fail   map[string]error
	calls  atomic.Int32

	mu    sync.Mutex
	order []string
}

func (e *echoExecutor) Execute(ctx context.Context, tc domain.TestCase) (domain.ProcessOutput, error) {
	e.calls.Add(1)
	e.mu.Lock()
	e.order = append(e.order, tc.Cmd)
	e.mu.Unlock()

	if d := e.delays[tc.Cmd]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return domain.ProcessOutput{}, ctx.Err()
		}
	}
	if err := e.fail[tc.Cmd]; err != nil {
		return domain.ProcessOutput{}, err
	}
	return domain.ProcessOutput{Stdout: tc.Cmd + "\n"}, nil
}

func aCollection() domain.TestSuiteCollection {
	return domain.NewTestSuiteCollection(
		domain.TestSuite{Name: "mysuite", Tests: []domain.TestCase{
			{Name: "mysuite::mytest", Cmd: "foo", Stdout: "foo\n"},
			{Name: "mysuite::anothertest", Cmd: "bar", Stdout: "bar\n"},
		}},
		domain.TestSuite{Name: "emptysuite"},
		domain.TestSuite{Name: "anothersuite", Tests: []domain.TestCase{
			{Name: "anothersuite::yetanothertest", Cmd: "baz", Stdout: "not baz\n"},
		}},
	)
}

func theExpectedReport() domain.TestReport {
	return domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "mysuite", Results: []domain.TestResult{
			{Name: "mysuite::mytest", ExpectedStdout: "foo\n", ActualStdout: "foo\n"},
			{Name: "mysuite::anothertest", ExpectedStdout: "bar\n", ActualStdout: "bar\n"},
		}},
		{Name: "emptysuite"},
		{Name: "anothersuite", Results: []domain.TestResult{
			{Name: "anothersuite::yetanothertest", ExpectedStdout: "not baz\n", ActualStdout: "baz\n"},
		}},
	}}
}

func TestDefaultRunner_RunAll(t *testing.T) {
	executor := &echoExecutor{}
	runner := NewRunner(executor, 1, logging.Discard())

	report, err := runner.RunAll(context.Background(), aCollection())
	require.NoError(t, err)

	if diff := cmp.Diff(theExpectedReport(), report); diff != "" {
		t.Errorf("unexpected report (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"foo", "bar", "baz"}, executor.order)
}

func TestDefaultRunner_ParallelKeepsInputOrder(t *testing.T) {
	// The first case finishes last; the report must still follow the input order.
	executor := &echoExecutor{delays: map[string]time.Duration{
		"foo": 150 * time.Millisecond,
		"bar": 50 * time.Millisecond,
	}}
	runner := NewRunner(executor, 3, logging.Discard())

	report, err := runner.RunAll(context.Background(), aCollection())
	require.NoError(t, err)

	if diff := cmp.Diff(theExpectedReport(), report); diff != "" {
		t.Errorf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestDefaultRunner_Deterministic(t *testing.T) {
	runner := NewRunner(NewShellExecutor("/bin/sh", nil, ""), 2, logging.Discard())
	collection := domain.NewTestSuiteCollection(domain.TestSuite{Name: "s", Tests: []domain.TestCase{
		{Name: "s::echo", Cmd: "echo hello", Stdout: "hello\n"},
		{Name: "s::fail", Cmd: "echo nope >&2; exit 4"},
	}})

	first, err := runner.RunAll(context.Background(), collection)
	require.NoError(t, err)
	second, err := runner.RunAll(context.Background(), collection)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.TestSuites[0].Results[0].IsSuccessful())
	assert.Equal(t, "nope\n", first.TestSuites[0].Results[1].ActualStderr)
	assert.Equal(t, 4, first.TestSuites[0].Results[1].ActualStatus)
}

func TestDefaultRunner_ExecutionErrorAbortsRun(t *testing.T) {
	cause := errors.New("cannot spawn")
	executor := &echoExecutor{fail: map[string]error{"foo": cause}}
	runner := NewRunner(executor, 1, logging.Discard())

	report, err := runner.RunAll(context.Background(), aCollection())
	require.Error(t, err)

	assert.ErrorIs(t, err, cause)
	assert.True(t, domain.IsKind(err, domain.KindRun))
	assert.Contains(t, err.Error(), "mysuite::mytest")
	assert.True(t, report.Empty(), "no partial report is delivered")
	assert.Equal(t, int32(1), executor.calls.Load(), "remaining cases are not run")
}

func TestDefaultRunner_ParallelErrorCancelsOthers(t *testing.T) {
	cause := errors.New("cannot spawn")
	executor := &echoExecutor{
		delays: map[string]time.Duration{"foo": 5 * time.Second},
		fail:   map[string]error{"bar": cause},
	}
	runner := NewRunner(executor, 2, logging.Discard())

	start := time.Now()
	report, err := runner.RunAll(context.Background(), aCollection())
	require.Error(t, err)

	assert.ErrorIs(t, err, cause)
	assert.True(t, report.Empty())
	assert.Less(t, time.Since(start), 5*time.Second, "the slow case is cancelled")
}

type recordingObserver struct {
	total    int
	names    []string
	finished bool
}

func (o *recordingObserver) Start(total int) { o.total = total }
func (o *recordingObserver) Observe(result domain.TestResult, _ time.Duration) {
	o.names = append(o.names, result.Name)
}
func (o *recordingObserver) Finish() { o.finished = true }

func TestDefaultRunner_Observer(t *testing.T) {
	runner := NewRunner(&echoExecutor{}, 1, logging.Discard())
	first, second := &recordingObserver{}, &recordingObserver{}
	runner.SetObserver(Observers{first, second})

	_, err := runner.RunAll(context.Background(), aCollection())
	require.NoError(t, err)

	for i, obs := range []*recordingObserver{first, second} {
		t.Run(fmt.Sprintf("observer %d", i), func(t *testing.T) {
			assert.Equal(t, 3, obs.total)
			assert.Equal(t, []string{"mysuite::mytest", "mysuite::anothertest", "anothersuite::yetanothertest"}, obs.names)
			assert.True(t, obs.finished)
		})
	}
}

func TestDefaultRunner_EmptyCollection(t *testing.T) {
	runner := NewRunner(&echoExecutor{}, 4, logging.Discard())

	report, err := runner.RunAll(context.Background(), domain.TestSuiteCollection{})
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestInOrderScheduler_Schedule(t *testing.T) {
	jobs := NewInOrderScheduler().Schedule(aCollection())

	require.Len(t, jobs, 3)
	assert.Equal(t, Job{Suite: 0, Case: 0, Slot: 0, Test: aCollection().TestSuites[0].Tests[0]}, jobs[0])
	assert.Equal(t, Job{Suite: 0, Case: 1, Slot: 1, Test: aCollection().TestSuites[0].Tests[1]}, jobs[1])
	assert.Equal(t, Job{Suite: 2, Case: 0, Slot: 2, Test: aCollection().TestSuites[2].Tests[0]}, jobs[2])
}
