// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package provisioning

// State is a step of the registration workflow.
type State int

const (
	StateGuarding State = iota
	StateResolving
	StateRegistering
	StatePersisting
	StateCompleting

	// terminal states
	StateAborted
	StateRegistrationFailed
	StateCompleted
)

var stateNames = map[State]string{
	StateGuarding:           "guarding",
	StateResolving:          "resolving",
	StateRegistering:        "registering",
	StatePersisting:         "persisting",
	StateCompleting:         "completing",
	StateAborted:            "aborted",
	StateRegistrationFailed: "registration-failed",
	StateCompleted:          "completed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether s ends the workflow.
func (s State) Terminal() bool {
	return s == StateAborted || s == StateRegistrationFailed || s == StateCompleted
}

// Succeeded reports whether the process should exit successfully.
func (s State) Succeeded() bool {
	return s == StateAborted || s == StateCompleted
}
