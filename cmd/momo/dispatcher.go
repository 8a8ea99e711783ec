// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/momokit/provisioner/provisioning"
	"github.com/urfave/cli/v2"
)

// cliDispatcher runs a chained command by re-entering the CLI app with the
// global flags of the current invocation.
type cliDispatcher struct {
	app     *cli.App
	globals []string
}

func (o *cliDispatcher) Dispatch(ctx context.Context, command string, args provisioning.FollowUp) error {
	return o.app.RunContext(ctx, o.argv(command, args))
}

func (o *cliDispatcher) argv(command string, args provisioning.FollowUp) []string {
	argv := append([]string{o.app.Name}, o.globals...)
	argv = append(argv, command, "--id", args.ID.String(), "--product", args.Product)
	if args.Force {
		argv = append(argv, "--force")
	}
	return argv
}
