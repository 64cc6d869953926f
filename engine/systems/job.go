package systems

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemNotStarted = errors.New("job system is not started")
	ErrJobSystemStopped    = errors.New("job system is stopped")
	ErrInvalidJob          = errors.New("job has no entry point")
)

// JobSystem is a fixed pool of workers pulling jobs from a shared queue.
type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobTask
	wg         sync.WaitGroup

	// guards the queue against Submit racing with Stop
	queueMu sync.RWMutex
	started bool
	stopped bool

	pendingMu sync.Mutex
	idle      *sync.Cond
	pending   int
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan metadata.JobTask, channelSize),
	}
	js.idle = sync.NewCond(&js.pendingMu)
	return js, nil
}

/**
 * @brief Starts the workers. Calling it again is a no-op.
 */
func (js *JobSystem) Start() error {
	js.queueMu.Lock()
	defer js.queueMu.Unlock()

	if js.stopped {
		return ErrJobSystemStopped
	}
	if js.started {
		return nil
	}
	js.started = true

	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go js.worker()
	}
	core.LogDebug("job system started with %d workers", js.numWorkers)
	return nil
}

func (js *JobSystem) worker() {
	defer js.wg.Done()
	for job := range js.jobQueue {
		js.run(job)
		js.done()
	}
}

func (js *JobSystem) run(job metadata.JobTask) {
	if err := job.OnStart(); err != nil {
		core.LogError(err.Error())
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	} else if job.OnComplete != nil {
		job.OnComplete()
	}

	// Call the completion callback if set
	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}

func (js *JobSystem) done() {
	js.pendingMu.Lock()
	js.pending--
	if js.pending == 0 {
		js.idle.Broadcast()
	}
	js.pendingMu.Unlock()
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) error {
	if jt.OnStart == nil {
		return ErrInvalidJob
	}

	js.queueMu.RLock()
	defer js.queueMu.RUnlock()

	if js.stopped {
		return ErrJobSystemStopped
	}
	if !js.started {
		return ErrJobSystemNotStarted
	}

	js.pendingMu.Lock()
	js.pending++
	js.pendingMu.Unlock()

	js.jobQueue <- jt
	return nil
}

// QueueJob runs fn on one of the workers.
func (js *JobSystem) QueueJob(fn func()) error {
	return js.Submit(metadata.JobTask{
		OnStart: func() error {
			fn()
			return nil
		},
	})
}

// IsBusy reports whether submitted jobs are still queued or running.
func (js *JobSystem) IsBusy() bool {
	js.pendingMu.Lock()
	defer js.pendingMu.Unlock()
	return js.pending > 0
}

// Wait blocks until every submitted job has finished.
func (js *JobSystem) Wait() {
	js.pendingMu.Lock()
	for js.pending > 0 {
		js.idle.Wait()
	}
	js.pendingMu.Unlock()
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Shuts the job system down once the queued jobs have run. Later
 * submissions fail with ErrJobSystemStopped.
 */
func (js *JobSystem) Stop() error {
	js.queueMu.Lock()
	if js.stopped {
		js.queueMu.Unlock()
		return nil
	}
	js.stopped = true
	close(js.jobQueue)
	js.queueMu.Unlock()

	js.wg.Wait()
	core.LogDebug("job system stopped")
	return nil
}
