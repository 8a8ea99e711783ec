// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/callback"
	"github.com/momokit/provisioner/common"
	"github.com/momokit/provisioner/config"
	"github.com/momokit/provisioner/identifier"
	"github.com/momokit/provisioner/prompt"
	"github.com/momokit/provisioner/registration"
)

// RequestSecretCommand is the follow-up offered after a registration.
const RequestSecretCommand = "request-secret"

// Options are the operator supplied overrides of a registration run.
type Options struct {
	ID       string // client identifier override
	Callback string // callback URI override
	Product  string // product override
	NoWrite  bool   // keep the env file untouched
	Force    bool   // run in a protected environment
}

// Registrar runs the client registration workflow.
type Registrar struct {
	Config       ConfigStore
	Prompter     prompt.Prompter
	Identifiers  identifier.Resolver // Prompter defaults to the registrar's
	Callbacks    callback.Resolver   // Prompter defaults to the registrar's
	Registration Registerer
	Dispatcher   Dispatcher
	Logger       *slog.Logger
}

// Run executes the workflow and returns the state it ended in.
func (o Registrar) Run(ctx context.Context, opts Options) (State, error) {
	if err := o.check(); err != nil {
		return StateGuarding, err
	}

	log := o.logger()
	p := o.Prompter

	if !guard(o.Config, p, opts.Force) {
		log.Info("registration aborted by environment guard")
		return StateAborted, nil
	}

	// Resolving
	product, err := resolveProduct(o.Config, opts.Product)
	if err != nil {
		return StateResolving, err
	}

	idKey := config.ProductKey(product, config.SuffixID)
	callbackKey := config.ProductKey(product, config.SuffixCallbackURI)

	p.Info(fmt.Sprintf("Registering a client for the %q product.", product))

	ids := o.Identifiers
	if ids.Prompter == nil {
		ids.Prompter = p
	}

	id, err := ids.Resolve(opts.ID, o.Config.Get(idKey))
	if err != nil {
		return StateResolving, err
	}

	callbacks := o.Callbacks
	if callbacks.Prompter == nil {
		callbacks.Prompter = p
	}
	if callbacks.Default == "" {
		callbacks.Default = o.Config.Get(config.KeyCallbackURI)
	}

	callbackURI, err := callbacks.Resolve(opts.Callback, o.Config.Get(callbackKey))
	if err != nil {
		return StateResolving, err
	}

	// Registering
	endpoint := apiUserURI(o.Config)

	log.Debug("registering client",
		"product", product, "id", id.String(), "callback", callbackURI, "endpoint", endpoint)

	outcome, err := o.Registration.Register(ctx, registration.Request{
		ID:          id,
		CallbackURI: callbackURI,
		Endpoint:    endpoint,
		Auth:        o.authenticator(product),
	})
	if err != nil {
		return StateRegistering, err
	}

	if !outcome.Succeeded() {
		o.reportFailure(outcome)
		log.Info("registration failed", "outcome", outcome.StatusLine())
		return StateRegistrationFailed, nil
	}

	p.Info(fmt.Sprintf("Client registered: %s", outcome.StatusLine()))

	// Persisting
	if err := o.persist(opts.NoWrite, []entry{
		{key: idKey, value: id.String()},
		{key: callbackKey, value: callbackURI},
	}); err != nil {
		return StatePersisting, err
	}

	// Completing
	if o.Dispatcher == nil {
		return StateCompleted, nil
	}

	ok, err := p.Confirm("Request an API secret for this client?", false)
	if err != nil {
		return StateCompleting, fmt.Errorf("reading follow-up answer: %w", err)
	}

	if ok {
		err := o.Dispatcher.Dispatch(ctx, RequestSecretCommand, FollowUp{
			ID:      id,
			Product: product,
			Force:   opts.Force,
		})
		if err != nil {
			return StateCompleting, fmt.Errorf("%s: %w", RequestSecretCommand, err)
		}
	}

	return StateCompleted, nil
}

func (o Registrar) check() error {
	if o.Config == nil {
		return errors.New("no config store supplied")
	}

	if o.Prompter == nil {
		return errors.New("no prompter supplied")
	}

	if o.Registration == nil {
		return errors.New("no registration client supplied")
	}

	return nil
}

func (o Registrar) authenticator(product string) auth.IAuthenticator {
	return auth.ForSubscriptionKey(o.Config.Get(config.ProductKey(product, config.SuffixSubscriptionKey)))
}

func (o Registrar) reportFailure(outcome registration.Outcome) {
	p := o.Prompter

	p.Error(outcome.StatusLine())

	switch v := outcome.(type) {
	case registration.ClientRejected:
		reportBody(p, v.Body, v.Problem)
	case registration.ServerFailure:
		reportBody(p, v.Body, v.Problem)
	}
}

func reportBody(p prompt.Prompter, body string, prob *common.ProblemError) {
	if prob != nil {
		p.Error(prob.Error())
	}
	if body != "" {
		p.Info(body)
	}
}

type entry struct {
	key   string
	value string
}

func (o Registrar) persist(noWrite bool, entries []entry) error {
	return writeEntries(o.Config, o.Prompter, o.logger(), noWrite, entries)
}

func writeEntries(cfg ConfigStore, p prompt.Prompter, log *slog.Logger, noWrite bool, entries []entry) error {
	if noWrite {
		for _, e := range entries {
			name := cfg.EnvName(e.key)
			cfg.SetLive(name, e.value)
			p.Info(fmt.Sprintf("%s=%s", name, e.value))
		}

		p.Warn("Env file left untouched (--no-write), record the values above.")

		return nil
	}

	values := make(map[string]string, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := cfg.EnvName(e.key)
		values[name] = e.value
		names = append(names, name)
	}

	if err := cfg.SetAll(values); err != nil {
		return fmt.Errorf("writing %s: %w", strings.Join(names, ", "), err)
	}

	log.Debug("configuration written", "names", names)
	p.Info("Configuration updated.")

	return nil
}

func (o Registrar) logger() *slog.Logger {
	return loggerOrDiscard(o.Logger)
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseID parses a client identifier taken from a flag or the configuration.
func parseID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid client identifier %q: %w", v, err)
	}
	return id, nil
}
