// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// read-only inspection of the registry state database
package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/monitz87/Polymesh/configuration"
	"github.com/monitz87/Polymesh/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "polymesh-inspect"
	app.Usage = "inspect the identity registry state database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.Uint64Flag{
			Name:  "now, n",
			Value: 0,
			Usage: " evaluate expiries at this `TIMESTAMP` (default: show everything)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "identity",
			Usage:     "show the record of one identity",
			ArgsUsage: "DID",
			Action:    runIdentity,
		},
		{
			Name:      "links",
			Usage:     "list the ownership links of a signatory",
			ArgsUsage: "DID|KEY",
			Action:    runLinks,
		},
		{
			Name:      "pending",
			Usage:     "list the pending authorizations of a signatory",
			ArgsUsage: "DID|KEY",
			Action:    runPending,
		},
		{
			Name:      "claims",
			Usage:     "list the claims held by an identity under one key",
			ArgsUsage: "DID CLAIM-KEY",
			Action:    runClaims,
		},
		{
			Name:   "pools",
			Usage:  "list the storage pool prefixes",
			Action: runPools,
		},
		{
			Name:  "version",
			Usage: "display polymesh-inspect version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the database read-only before any command
	app.Before = func(c *cli.Context) error {

		command := c.Args().Get(0)
		switch command {
		case "version", "pools", "help", "h", "":
			return nil
		}

		configurationFile := c.GlobalString("config-file")
		if "" == configurationFile {
			return fmt.Errorf("missing configuration file argument")
		}

		options, err := configuration.GetConfiguration(configurationFile)
		if nil != err {
			return fmt.Errorf("configuration: %q error: %s", configurationFile, err)
		}

		err = logger.Initialise(options.Logging)
		if nil != err {
			return fmt.Errorf("logger setup failed with error: %s", err)
		}

		err = storage.Initialise(options.DatabaseFileName(), storage.ReadOnly)
		if nil != err {
			return fmt.Errorf("storage setup failed with error: %s", err)
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if storage.IsInitialised() {
			storage.Finalise()
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}

// list available pool prefixes without opening a database
func runPools(c *cli.Context) error {

	poolType := reflect.TypeOf(storage.Pool)

	fmt.Fprintf(c.App.Writer, "pools:\n")
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		fmt.Fprintf(c.App.Writer, "  %s → %s\n", fieldInfo.Tag.Get("prefix"), fieldInfo.Name)
	}
	return nil
}
