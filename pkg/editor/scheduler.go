package editor

import "sync"

// Scheduler runs a task after the current event handler returns and before
// the next input event is handled.
type Scheduler interface {
	Post(task func())
}

// Queue is a Scheduler drained explicitly by the host after each event.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// Post appends a task.
func (q *Queue) Post(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs pending tasks in order, including tasks they post, and returns
// how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		ran++
	}
}
