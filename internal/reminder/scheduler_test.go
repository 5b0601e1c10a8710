package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJob counts invocations and can be made to block or fail.
type fakeJob struct {
	mu   sync.Mutex
	runs int

	started chan struct{} // closed on first Run, if non-nil
	release chan struct{} // Run blocks until closed, if non-nil
	err     error
	panics  bool
}

func (j *fakeJob) Name() string { return "fake_job" }

func (j *fakeJob) Run(ctx context.Context) error {
	j.mu.Lock()
	j.runs++
	first := j.runs == 1
	j.mu.Unlock()

	if first && j.started != nil {
		close(j.started)
	}
	if j.release != nil {
		<-j.release
	}
	if j.panics {
		panic("fake job exploded")
	}
	return j.err
}

func (j *fakeJob) Runs() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func TestSchedulerRunsJobOnInterval(t *testing.T) {
	t.Parallel()

	job := &fakeJob{}
	s := NewScheduler(job, 20*time.Millisecond, testLogger())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return job.Runs() >= 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	t.Parallel()

	job := &fakeJob{}
	s := NewScheduler(job, time.Hour, testLogger())

	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	assert.True(t, s.Running())
	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "fake_job", jobs[0].Name)
	assert.Equal(t, time.Hour.String(), jobs[0].Interval)
	assert.True(t, jobs[0].NextRun.After(time.Now()))
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&fakeJob{}, time.Hour, testLogger())
	s.Stop()

	assert.False(t, s.Running())
	assert.Empty(t, s.Jobs())
}

func TestSchedulerStopWaitsForInFlightRun(t *testing.T) {
	t.Parallel()

	job := &fakeJob{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewScheduler(job, 10*time.Millisecond, testLogger())

	s.Start(context.Background())

	select {
	case <-job.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	// Stop must block while the invocation is still running.
	select {
	case <-stopped:
		t.Fatal("Stop returned before the in-flight run finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(job.release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
	assert.False(t, s.Running())
}

func TestSchedulerOverlappingTickIsSkipped(t *testing.T) {
	t.Parallel()

	job := &fakeJob{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewScheduler(job, time.Hour, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.tick(context.Background())
	}()

	select {
	case <-job.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	// A tick arriving while the first is still running must return
	// immediately without invoking the job again.
	s.tick(context.Background())
	assert.Equal(t, 1, job.Runs())

	close(job.release)
	wg.Wait()
	assert.Equal(t, 1, job.Runs())
}

func TestSchedulerSurvivesJobPanic(t *testing.T) {
	t.Parallel()

	job := &fakeJob{panics: true}
	s := NewScheduler(job, 20*time.Millisecond, testLogger())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return job.Runs() >= 2 },
		2*time.Second, 5*time.Millisecond)
	assert.True(t, s.Running())
}

func TestSchedulerSurvivesJobError(t *testing.T) {
	t.Parallel()

	job := &fakeJob{err: errors.New("query fault")}
	s := NewScheduler(job, 20*time.Millisecond, testLogger())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return job.Runs() >= 2 },
		2*time.Second, 5*time.Millisecond)
	assert.True(t, s.Running())
}
