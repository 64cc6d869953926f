package metadata

/** Entry point of a job. */
type JobStart func() error

/**
 * @brief Describes a job to be run by the job system.
 */
type JobTask struct {
	/** @brief Invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief Invoked when OnStart returned no error. Optional. */
	OnComplete func()
	/** @brief Invoked with the error OnStart returned. Optional. */
	OnFailure func(err error)
	/** @brief Always invoked last, whatever the outcome. Optional. */
	OnCompletionCallback func()
}
