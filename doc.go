// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Package provisioner provisions API users on a mobile-money sandbox.

The momo command (cmd/momo) drives the workflow interactively:

	momo register-id [--id UUID] [--callback URI] [--product NAME] [--no-write] [--force]
	momo request-secret [--id UUID] [--product NAME] [--no-write] [--force]

Register

register-id resolves a client identifier and a callback URI with the
operator, posts them to the API user endpoint and, on success, stores them as
MOMO_<PRODUCT>_ID and MOMO_<PRODUCT>_CALLBACK_URI in the env file. The
operator is then offered to chain request-secret.

The workflow can be embedded directly:

	r := provisioning.Registrar{
		Config:       store,
		Prompter:     prompt.NewTerminal(os.Stdin, os.Stderr),
		Registration: registration.Client{HTTP: common.NewClient(nil)},
	}

	state, err := r.Run(ctx, provisioning.Options{Product: "collection"})

Environment guard

Both commands refuse to run when the configured environment is protected
("production" unless overridden) and --force is not given.
*/
package provisioner
