package environment

// TaskParam is an opaque task-parameter record describing the
// objective of a single meta-task. Records are immutable value objects
// exchanged with a meta-learning outer loop: an environment never
// modifies a record it returns, and a record sampled from one
// environment may only be consumed by an environment of the same task
// family.
type TaskParam interface{}

// MetaEnvironment is an Environment whose reward computation is
// conditioned on a swappable TaskParam. Swapping the active task
// parameter changes only the reward scheme of the environment; it
// never resets or reconstructs the underlying simulation, so a single
// long-lived environment instance can serve many meta-tasks.
type MetaEnvironment interface {
	Environment

	// SampleTasks draws n task-parameter records from the
	// environment's task distribution
	SampleTasks(n int) []TaskParam

	// ResetTask replaces the active task parameter. The simulation
	// state is left untouched; callers reset episodes separately with
	// Reset.
	ResetTask(TaskParam)

	// CurrentTask returns the active task parameter
	CurrentTask() TaskParam
}
