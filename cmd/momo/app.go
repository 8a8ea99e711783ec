// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/callback"
	"github.com/momokit/provisioner/common"
	"github.com/momokit/provisioner/config"
	"github.com/momokit/provisioner/identifier"
	"github.com/momokit/provisioner/prompt"
	"github.com/momokit/provisioner/provisioning"
	"github.com/momokit/provisioner/registration"
	"github.com/momokit/provisioner/secret"
	"github.com/urfave/cli/v2"
)

const appName = "momo"

// nonInteractiveAttempts caps the resolver loops when stdin is not a terminal.
const nonInteractiveAttempts = 5

// session is what a command needs to run, built from the global flags.
type session struct {
	log    *slog.Logger
	store  *config.Store
	client *common.Client
}

func newApp(in io.Reader, out io.Writer, environ []string) *cli.App {
	term := prompt.NewTerminal(in, out)

	app := &cli.App{
		Name:           appName,
		Usage:          "provision mobile-money sandbox API users",
		Version:        version,
		Reader:         in,
		Writer:         out,
		ErrWriter:      out,
		Flags:          globalFlags,
		ExitErrHandler: func(*cli.Context, error) {},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "register-id",
			Usage: "register a client identifier and callback URI with the provisioning API",
			Flags: []cli.Flag{idFlag, callbackFlag, productFlag, noWriteFlag, forceFlag},
			Action: func(cCtx *cli.Context) error {
				rt, err := newSession(cCtx, out, environ)
				if err != nil {
					return err
				}

				attempts := maxAttempts(cCtx, in)

				r := provisioning.Registrar{
					Config:       rt.store,
					Prompter:     term,
					Identifiers:  identifier.Resolver{MaxAttempts: attempts},
					Callbacks:    callback.Resolver{MaxAttempts: attempts},
					Registration: registration.Client{HTTP: rt.client},
					Dispatcher:   &cliDispatcher{app: app, globals: forwardedFlags(cCtx)},
					Logger:       rt.log,
				}

				state, err := r.Run(cCtx.Context, provisioning.Options{
					ID:       cCtx.String(idFlag.Name),
					Callback: cCtx.String(callbackFlag.Name),
					Product:  cCtx.String(productFlag.Name),
					NoWrite:  cCtx.Bool(noWriteFlag.Name),
					Force:    cCtx.Bool(forceFlag.Name),
				})
				if err != nil {
					return fmt.Errorf("register-id (%s): %w", state, err)
				}

				rt.log.Debug("register-id finished", "state", state.String())

				if !state.Succeeded() {
					return cli.Exit(fmt.Sprintf("register-id: %s", state), 1)
				}

				return nil
			},
		},
		{
			Name:  provisioning.RequestSecretCommand,
			Usage: "request the API key of a registered client",
			Flags: []cli.Flag{idFlag, productFlag, noWriteFlag, forceFlag},
			Action: func(cCtx *cli.Context) error {
				rt, err := newSession(cCtx, out, environ)
				if err != nil {
					return err
				}

				r := provisioning.SecretRequester{
					Config:   rt.store,
					Prompter: term,
					Keys:     secret.Client{HTTP: rt.client},
					Logger:   rt.log,
				}

				state, err := r.Run(cCtx.Context, provisioning.SecretOptions{
					ID:      cCtx.String(idFlag.Name),
					Product: cCtx.String(productFlag.Name),
					NoWrite: cCtx.Bool(noWriteFlag.Name),
					Force:   cCtx.Bool(forceFlag.Name),
				})
				if err != nil {
					return fmt.Errorf("%s (%s): %w", provisioning.RequestSecretCommand, state, err)
				}

				rt.log.Debug("request-secret finished", "state", state.String())

				return nil
			},
		},
	}

	return app
}

func newSession(cCtx *cli.Context, logOut io.Writer, environ []string) (*session, error) {
	log := setupLogger(cCtx, logOut)

	store, err := config.Load(config.LoadOptions{
		SettingsPath: cCtx.String(configFlag.Name),
		EnvFilePath:  cCtx.String(envFileFlag.Name),
		Environ:      environ,
	})
	if err != nil {
		return nil, err
	}

	client := common.NewClient(nil)
	client.HTTPClient.Timeout = requestTimeout(cCtx)

	certs := cCtx.StringSlice(caCertFlag.Name)
	if len(certs) > 0 || cCtx.Bool(insecureFlag.Name) {
		transport, err := auth.NewTLSTransport(auth.TLSOptions{
			CACertPaths: certs,
			Insecure:    cCtx.Bool(insecureFlag.Name),
		})
		if err != nil {
			return nil, err
		}
		client.HTTPClient.Transport = transport
	}

	log.Debug("configuration loaded",
		"settings", cCtx.String(configFlag.Name),
		"env_file", store.File.Path,
		"environment", store.Get(config.KeyEnvironment))

	return &session{log: log, store: store, client: client}, nil
}

// maxAttempts resolves the resolver retry cap: an explicit flag wins,
// otherwise the loops are unbounded only when stdin is a terminal.
func maxAttempts(cCtx *cli.Context, in io.Reader) int {
	if n := cCtx.Int(maxAttemptsFlag.Name); n >= 0 {
		return n
	}

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return 0
	}

	return nonInteractiveAttempts
}
