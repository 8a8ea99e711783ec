// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Package prompt implements the operator dialogue used by the provisioning
commands.

The Prompter interface is the only way the resolvers and the registrar talk to
the operator, so any line oriented input source can drive them:

	p := prompt.NewTerminal(os.Stdin, os.Stderr)

	id, err := p.Ask("Client identifier (UUID)", uuid.NewString())

Ask returns the default when the operator submits an empty line. Submitting a
lone ClearToken ("-") returns an empty answer instead, which lets the operator
blank out a value that has a default.

Confirm accepts y, yes, n and no (case insensitive) and keeps asking until one
of them, or an empty line selecting the default, is entered.

When the input is exhausted both calls return an error wrapping io.EOF.
*/
package prompt
