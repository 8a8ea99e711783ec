// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Command momo provisions sandbox API users.

	momo [global options] register-id [--id UUID] [--callback URI] [--product NAME] [--no-write] [--force]
	momo [global options] request-secret [--id UUID] [--product NAME] [--no-write] [--force]

register-id registers a client identifier and its callback URI with the
provisioning API and stores them in the env file. request-secret requests the
API key of a registered client; register-id offers to run it after a
successful registration.

Global options select the settings file (--config), the env file
(--env-file, default .env), extra CA certificates (--ca-cert), the request
timeout and logging.
*/
package main
