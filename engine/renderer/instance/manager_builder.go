package instance

// ManagerBuilderOption is a function that configures a manager instance during construction.
type ManagerBuilderOption func(*manager)

// WithWorkers is an option builder that sets the number of pool workers used
// for parallel matrix packing. Defaults to NumCPU-1.
//
// Parameters:
//   - workers: the worker count, minimum 1
//
// Returns:
//   - ManagerBuilderOption: a function that applies the worker count option to a manager
func WithWorkers(workers int) ManagerBuilderOption {
	return func(m *manager) {
		m.workers = max(workers, 1)
	}
}
