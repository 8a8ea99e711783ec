// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/common"
	"github.com/momokit/provisioner/config"
	"github.com/urfave/cli/v2"
)

var version = "dev"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "settings file (TOML or YAML)",
	EnvVars: []string{"MOMO_CONFIG"},
}

var envFileFlag = &cli.StringFlag{
	Name:  "env-file",
	Value: config.DefaultEnvFile,
	Usage: "env file read for defaults and written after a successful run",
}

var caCertFlag = &cli.StringSliceFlag{
	Name:  "ca-cert",
	Usage: "additional PEM CA certificate trusted for the API (repeatable)",
}

var insecureFlag = &cli.BoolFlag{
	Name:  "insecure",
	Usage: "skip TLS verification (local mock sandboxes only)",
}

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Value: common.DefaultTimeout,
	Usage: "timeout of a single API request",
}

var maxAttemptsFlag = &cli.IntFlag{
	Name:  "max-attempts",
	Value: -1,
	Usage: "invalid answers accepted before giving up, 0 for no limit (default: no limit on a terminal, 5 otherwise)",
}

var logJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "log in JSON format",
}

var logDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Usage: "log debug messages",
}

var logUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Usage: "generate a uuid and add to all log messages",
}

var globalFlags = []cli.Flag{
	configFlag,
	envFileFlag,
	caCertFlag,
	insecureFlag,
	timeoutFlag,
	maxAttemptsFlag,
	logJSONFlag,
	logDebugFlag,
	logUIDFlag,
}

var idFlag = &cli.StringFlag{
	Name:  "id",
	Usage: "client identifier (UUID)",
}

var callbackFlag = &cli.StringFlag{
	Name:  "callback",
	Usage: "provider callback URI",
}

var productFlag = &cli.StringFlag{
	Name:  "product",
	Usage: "product whose settings are provisioned (collection, disbursement, remittance, ...)",
}

var noWriteFlag = &cli.BoolFlag{
	Name:  "no-write",
	Usage: "do not write the env file, print the values instead",
}

var forceFlag = &cli.BoolFlag{
	Name:  "force",
	Usage: "run even when the application is in a protected environment",
}

func setupLogger(cCtx *cli.Context, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if cCtx.Bool(logDebugFlag.Name) {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if cCtx.Bool(logJSONFlag.Name) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h).With("service", "momo", "version", version)

	if cCtx.Bool(logUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}

	return logger
}

// forwardedFlags renders the global flags set on this invocation so that a
// chained command runs against the same configuration.
func forwardedFlags(cCtx *cli.Context) []string {
	var args []string

	for _, name := range []string{configFlag.Name, envFileFlag.Name} {
		if cCtx.IsSet(name) {
			args = append(args, "--"+name, cCtx.String(name))
		}
	}

	for _, p := range cCtx.StringSlice(caCertFlag.Name) {
		args = append(args, "--"+caCertFlag.Name, p)
	}

	if cCtx.IsSet(timeoutFlag.Name) {
		args = append(args, "--"+timeoutFlag.Name, cCtx.Duration(timeoutFlag.Name).String())
	}

	if cCtx.IsSet(maxAttemptsFlag.Name) {
		args = append(args, "--"+maxAttemptsFlag.Name, strconv.Itoa(cCtx.Int(maxAttemptsFlag.Name)))
	}

	for _, name := range []string{insecureFlag.Name, logJSONFlag.Name, logDebugFlag.Name, logUIDFlag.Name} {
		if cCtx.Bool(name) {
			args = append(args, "--"+name)
		}
	}

	return args
}

func requestTimeout(cCtx *cli.Context) time.Duration {
	if d := cCtx.Duration(timeoutFlag.Name); d > 0 {
		return d
	}
	return common.DefaultTimeout
}
