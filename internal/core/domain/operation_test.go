package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOperation_Failure_TopLevel tests top-level error detection
func TestOperation_Failure_TopLevel(t *testing.T) {
	op := Operation{
		Name:  "fileSearchStores/s/operations/op-1",
		Done:  true,
		Error: &OperationError{Code: 13, Message: "ingestion failed"},
	}

	failure := op.Failure()
	require.NotNil(t, failure)
	assert.Equal(t, "ingestion failed", failure.Message)
}

// TestOperation_Failure_NestedResult tests that an error nested under
// the result is detected even when the top level is clean
func TestOperation_Failure_NestedResult(t *testing.T) {
	op := Operation{
		Name: "fileSearchStores/s/operations/op-2",
		Done: true,
		Result: &OperationResult{
			Error: &OperationError{Message: "chunking failed"},
		},
	}

	failure := op.Failure()
	require.NotNil(t, failure)
	assert.Equal(t, "chunking failed", failure.Message)
}

// TestOperation_Failure_TopLevelWins tests precedence when both levels
// carry an error
func TestOperation_Failure_TopLevelWins(t *testing.T) {
	op := Operation{
		Done:   true,
		Error:  &OperationError{Message: "top"},
		Result: &OperationResult{Error: &OperationError{Message: "nested"}},
	}

	failure := op.Failure()
	require.NotNil(t, failure)
	assert.Equal(t, "top", failure.Message)
}

// TestOperation_Failure_CleanSuccess tests that a finished operation with
// no error at either level reports no failure
func TestOperation_Failure_CleanSuccess(t *testing.T) {
	op := Operation{
		Done:   true,
		Result: &OperationResult{},
	}

	assert.Nil(t, op.Failure())
}

// TestOperation_Failure_EmptyErrorStillFails tests that a present but
// zero-valued error is a failure, distinct from an absent one
func TestOperation_Failure_EmptyErrorStillFails(t *testing.T) {
	op := Operation{
		Done:   true,
		Result: &OperationResult{Error: &OperationError{}},
	}

	assert.NotNil(t, op.Failure())
}

// TestOperation_Pending tests a not-yet-finished operation
func TestOperation_Pending(t *testing.T) {
	op := Operation{Name: "fileSearchStores/s/operations/op-3"}

	assert.False(t, op.Done)
	assert.Nil(t, op.Failure())
}
