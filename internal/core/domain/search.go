package domain

// Answer is the result of a grounded query against a store.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Citations lists the titles of the grounding chunks the answer
	// drew on, in the order the service reported them.
	Citations []string
}
