// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package registration

import (
	"fmt"

	"github.com/momokit/provisioner/common"
)

// Outcome is the classified result of a registration attempt. It is one of
// Success, ClientRejected, ServerFailure or TransportFailure.
type Outcome interface {
	// Succeeded reports whether the identifier was registered.
	Succeeded() bool
	// StatusLine is the one line summary shown to the operator.
	StatusLine() string
}

// Success is any response outside the 4xx and 5xx ranges.
type Success struct {
	StatusCode int
	Reason     string
}

// ClientRejected is a 4xx response.
type ClientRejected struct {
	StatusCode int
	Reason     string
	Body       string
	Problem    *common.ProblemError
}

// ServerFailure is a 5xx response.
type ServerFailure struct {
	StatusCode int
	Reason     string
	Body       string
	Problem    *common.ProblemError
}

// TransportFailure means no response was received.
type TransportFailure struct {
	Message string
}

func (Success) Succeeded() bool          { return true }
func (ClientRejected) Succeeded() bool   { return false }
func (ServerFailure) Succeeded() bool    { return false }
func (TransportFailure) Succeeded() bool { return false }

func (o Success) StatusLine() string {
	return fmt.Sprintf("%d %s", o.StatusCode, o.Reason)
}

func (o ClientRejected) StatusLine() string {
	return fmt.Sprintf("client error: %d %s", o.StatusCode, o.Reason)
}

func (o ServerFailure) StatusLine() string {
	return fmt.Sprintf("server error: %d %s", o.StatusCode, o.Reason)
}

func (o TransportFailure) StatusLine() string {
	return fmt.Sprintf("connection failed: %s", o.Message)
}
