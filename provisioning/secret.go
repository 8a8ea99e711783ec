// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/config"
	"github.com/momokit/provisioner/prompt"
)

// SecretOptions are the operator supplied overrides of a request-secret run.
type SecretOptions struct {
	ID      string
	Product string
	NoWrite bool
	Force   bool
}

// SecretRequester requests and stores the API key of a registered client.
type SecretRequester struct {
	Config   ConfigStore
	Prompter prompt.Prompter
	Keys     KeyRequester
	Logger   *slog.Logger
}

// Run returns StateAborted when the environment guard refuses to proceed and
// StateCompleted once the key is stored.
func (o SecretRequester) Run(ctx context.Context, opts SecretOptions) (State, error) {
	if err := o.check(); err != nil {
		return StateGuarding, err
	}

	p := o.Prompter

	if !guard(o.Config, p, opts.Force) {
		return StateAborted, nil
	}

	product, err := resolveProduct(o.Config, opts.Product)
	if err != nil {
		return StateResolving, err
	}

	raw := opts.ID
	if raw == "" {
		raw = o.Config.Get(config.ProductKey(product, config.SuffixID))
	}
	if raw == "" {
		return StateResolving, fmt.Errorf("no client identifier for %q, run register-id first", product)
	}

	id, err := parseID(raw)
	if err != nil {
		return StateResolving, err
	}

	key, err := o.Keys.Request(
		ctx,
		apiUserURI(o.Config),
		id,
		auth.ForSubscriptionKey(o.Config.Get(config.ProductKey(product, config.SuffixSubscriptionKey))),
	)
	if err != nil {
		return StateRegistering, fmt.Errorf("requesting API secret: %w", err)
	}

	p.Info(fmt.Sprintf("API secret issued for client %s.", id))

	err = writeEntries(o.Config, p, loggerOrDiscard(o.Logger), opts.NoWrite, []entry{
		{key: config.ProductKey(product, config.SuffixSecret), value: key},
	})
	if err != nil {
		return StatePersisting, err
	}

	return StateCompleted, nil
}

func (o SecretRequester) check() error {
	if o.Config == nil {
		return errors.New("no config store supplied")
	}

	if o.Prompter == nil {
		return errors.New("no prompter supplied")
	}

	if o.Keys == nil {
		return errors.New("no key requester supplied")
	}

	return nil
}
