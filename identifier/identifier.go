// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

// Package identifier resolves the client identifier (the API user UUID) that
// is registered with the provisioning API.
package identifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/prompt"
)

var ErrTooManyAttempts = errors.New("too many invalid client identifiers")

var errNilUUID = errors.New("the nil UUID cannot be registered")

// Resolver picks a client identifier and has the operator confirm it.
type Resolver struct {
	Prompter prompt.Prompter
	// MaxAttempts caps the number of invalid answers. Zero means no cap.
	MaxAttempts int
	// Generate returns a fresh identifier. Defaults to uuid.New.
	Generate func() uuid.UUID
}

// Resolve returns the first non-empty of override and persisted, or a freshly
// generated UUID, after the operator has confirmed or replaced it. Invalid
// answers, including the nil UUID, are re-prompted until a valid UUID is
// entered.
//
// Any form uuid.Parse accepts is valid (hyphenated, 32 hex digits, braces,
// urn:uuid: prefix, any case). The result is always the canonical lower-case
// hyphenated form, which is what gets registered and persisted.
func (o Resolver) Resolve(override, persisted string) (uuid.UUID, error) {
	p := o.Prompter

	candidate := firstNonEmpty(override, persisted)
	if candidate == "" {
		gen := o.Generate
		if gen == nil {
			gen = uuid.New
		}
		candidate = gen().String()
		p.Info("Generated a new client identifier (UUID v4).")
	}

	p.Info("The client identifier is sent as X-Reference-Id and becomes the API user.")

	for invalid := 0; ; {
		answer, err := p.Ask("Client identifier (UUID)", candidate)
		if err != nil {
			return uuid.Nil, fmt.Errorf("reading client identifier: %w", err)
		}

		id, err := uuid.Parse(answer)
		if err == nil && id == uuid.Nil {
			err = errNilUUID
		}
		if err == nil {
			return id, nil
		}

		invalid++
		if o.MaxAttempts > 0 && invalid >= o.MaxAttempts {
			return uuid.Nil, fmt.Errorf("%w (%d attempts)", ErrTooManyAttempts, invalid)
		}

		p.Warn(fmt.Sprintf("Invalid UUID %q: %v", answer, err))
		p.Info("Enter a UUID such as 123e4567-e89b-42d3-a456-426614174000.")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
