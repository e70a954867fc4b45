package animator

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	Schedule(fn func())
}

// ManualScheduler queues callbacks until Step is called. It stands in for
// display timing in tests and headless rendering.
type ManualScheduler struct {
	queue []func()
}

func (m *ManualScheduler) Schedule(fn func()) {
	m.queue = append(m.queue, fn)
}

// Step runs every callback queued before the call. Callbacks scheduled while
// stepping wait for the next Step. It returns how many callbacks ran.
func (m *ManualScheduler) Step() int {
	batch := m.queue
	m.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int {
	return len(m.queue)
}
