package domain

// OperationError describes a failure reported by the remote service.
type OperationError struct {
	// Code is the remote status code, zero when not supplied.
	Code int

	// Message is the remote error description.
	Message string
}

// OperationResult is the payload of a finished operation. The remote
// service may report a failure here instead of at the operation level.
type OperationResult struct {
	// Error is set when the finished job failed.
	Error *OperationError
}

// Operation is a handle to an asynchronous remote ingestion job.
// It transitions to done exclusively through re-fetch by name and is
// terminal once Done is true, regardless of success or failure.
//
// Absent fields are nil; a present-but-empty error is still a failure.
type Operation struct {
	// Name is the handle used to re-fetch the operation.
	Name string

	// Done reports whether the job has finished.
	Done bool

	// Error is the top-level failure, nil when none was reported.
	Error *OperationError

	// Result is the completion payload, nil until the job finishes.
	Result *OperationResult
}

// Failure returns the operation's error, checking the top level first
// and then one level under the result. Returns nil when neither level
// carries an error.
func (o *Operation) Failure() *OperationError {
	if o.Error != nil {
		return o.Error
	}
	if o.Result != nil && o.Result.Error != nil {
		return o.Result.Error
	}
	return nil
}
