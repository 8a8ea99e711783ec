// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Package provisioning sequences the client registration workflow.

Register

The whole workflow is handled via a single invocation of the Run method of a
Registrar:

	r := provisioning.Registrar{
		Config:       store,                 // provisioning.ConfigStore
		Prompter:     prompt.NewTerminal(os.Stdin, os.Stderr),
		Registration: registration.Client{HTTP: common.NewClient(nil)},
		Dispatcher:   dispatcher,            // runs the follow-up command
	}

	state, err := r.Run(ctx, provisioning.Options{Product: "collection"})

Run moves through Guarding, Resolving, Registering, Persisting and Completing.
It stops early in Aborted when the configured environment is protected and
Force is not set, and in RegistrationFailed when the registration endpoint does
not accept the client. Neither is an error: err is only set for failures
outside the workflow (unreadable input, config write errors, ...).

On success the client identifier and callback URI are written to
<PRODUCT>_ID and <PRODUCT>_CALLBACK_URI, and the operator is offered to run the
request-secret command for the new client.

Request secret

SecretRequester.Run implements the request-secret command: it requests an API
key for an already registered client and stores it in <PRODUCT>_SECRET.
*/
package provisioning
