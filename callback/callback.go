// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

// Package callback resolves the provider callback host sent along with a
// client registration.
package callback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momokit/provisioner/common"
	"github.com/momokit/provisioner/prompt"
)

// DefaultURI is offered when neither an override nor a persisted value exists.
const DefaultURI = "http://localhost:8000/momo/callback"

var ErrTooManyAttempts = errors.New("too many invalid callback URIs")

// Resolver picks a callback URI and has the operator confirm it.
type Resolver struct {
	Prompter prompt.Prompter
	// MaxAttempts caps the number of invalid answers. Zero means no cap.
	MaxAttempts int
	// Default replaces DefaultURI when non-empty.
	Default string
}

// Resolve returns the first non-empty of override, persisted and the default
// URI after the operator has confirmed or replaced it.
//
// Only non-empty answers are validated: an operator who clears the value gets
// an empty callback back.
func (o Resolver) Resolve(override, persisted string) (string, error) {
	p := o.Prompter

	def := o.Default
	if def == "" {
		def = DefaultURI
	}

	candidate := firstNonEmpty(override, persisted, def)

	p.Info("The callback URI must be reachable by the sandbox (providerCallbackHost).")

	for invalid := 0; ; {
		answer, err := p.Ask("Callback URI", candidate)
		if err != nil {
			return "", fmt.Errorf("reading callback URI: %w", err)
		}

		if answer == "" {
			p.Warn("No callback URI set.")
			return "", nil
		}

		_, err = common.ParseAbsoluteURI(answer)
		if err == nil {
			return answer, nil
		}

		invalid++
		if o.MaxAttempts > 0 && invalid >= o.MaxAttempts {
			return "", fmt.Errorf("%w (%d attempts)", ErrTooManyAttempts, invalid)
		}

		p.Warn(fmt.Sprintf("Invalid callback URI %q: %v", answer, err))
		p.Info("Enter an absolute URL such as https://example.com/momo/callback.")
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
