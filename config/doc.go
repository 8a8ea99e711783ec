// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Package config holds the provisioner configuration.

Three layers feed the live configuration, later layers winning:

 1. the settings file (TOML or YAML, picked by extension), decoded into
    Settings;
 2. the env file (".env" by default), the durable store written back after a
    successful registration;
 3. the process environment.

Live values are addressed by key (PRODUCT, COLLECTION_ID, ...). Every key has
an environment variable name: APP_ENV for ENVIRONMENT, MOMO_<KEY> otherwise.
Store.Set takes that variable name and updates both the env file and the live
configuration.

A settings file looks like:

	environment = "local"
	product = "collection"
	api_user_uri = "https://sandbox.momodeveloper.mtn.com/v1_0/apiuser"

	[products.collection]
	subscription_key = "..."
*/
package config
