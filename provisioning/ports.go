// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package provisioning

import (
	"context"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/registration"
)

// ConfigStore is the configuration port. Values are read by key and written
// by environment variable name.
type ConfigStore interface {
	Get(key string) string
	EnvName(key string) string
	// SetAll writes the entries (by variable name) to the durable store in a
	// single update, then to the live configuration.
	SetAll(values map[string]string) error
	// SetLive only updates the live configuration.
	SetLive(envName, value string)
}

// Registerer submits a registration request.
type Registerer interface {
	Register(ctx context.Context, req registration.Request) (registration.Outcome, error)
}

// KeyRequester requests the API key of a registered client.
type KeyRequester interface {
	Request(ctx context.Context, endpoint string, id uuid.UUID, a auth.IAuthenticator) (string, error)
}

// FollowUp carries the parameters forwarded to a chained command.
type FollowUp struct {
	ID      uuid.UUID
	Product string
	Force   bool
}

// Dispatcher runs a named command.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string, args FollowUp) error
}
