// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/akualab/viterbi"
	"github.com/akualab/viterbi/model/hmm"
	"github.com/golang/glog"
	"github.com/urfave/cli"
)

var generateCommand = cli.Command{
	Name:    "generate",
	Aliases: []string{"g"},
	Usage:   "Generates random observations using the model.",
	Description: `
samples a hidden state sequence and its observations from the model
parameters. Observations are written to the observations file and the
states to the states file, both one value per line.

ex:
$ viterbi generate --data-dir ./data --length 5000 --seed 7
`,
	Action: generateAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-dir, d", Usage: "dir for relative file names"},
		cli.StringFlag{Name: "transition", Usage: "transition matrix file"},
		cli.StringFlag{Name: "emission", Usage: "emission matrix file"},
		cli.StringFlag{Name: "initial", Usage: "initial state distribution file"},
		cli.StringFlag{Name: "observations, o", Usage: "output observations file"},
		cli.StringFlag{Name: "states, s", Usage: "output hidden states file"},
		cli.IntFlag{Name: "length, n", Usage: "number of observations"},
		cli.Int64Flag{Name: "seed", Usage: "seed for random number generator"},
	},
}

func generateAction(c *cli.Context) error {

	config := initApp(c)

	stringParam(c, "data-dir", &config.DataDir)
	stringParam(c, "transition", &config.Input.Transition)
	stringParam(c, "emission", &config.Input.Emission)
	stringParam(c, "initial", &config.Input.Initial)
	stringParam(c, "observations", &config.Input.Observations)
	stringParam(c, "states", &config.Generator.StatesFile)
	intParam(c, "length", &config.Generator.Length)
	int64Param(c, "seed", &config.Generator.Seed)
	viterbi.Fatal(config.Validate())

	viterbi.Fatal(generate(config))
	return nil
}

func generate(config *viterbi.Config) error {

	m, err := viterbi.ReadParams(config)
	if err != nil {
		return err
	}
	gen, err := hmm.NewGenerator(m, config.Generator.Seed)
	if err != nil {
		return err
	}
	states, obs, err := gen.Next(config.Generator.Length)
	if err != nil {
		return err
	}

	fn := config.Path(config.Input.Observations)
	if err := viterbi.WriteIntsFile(fn, obs); err != nil {
		return err
	}
	glog.Infof("wrote %d observations to [%s]", len(obs), fn)

	if fn := config.Path(config.Generator.StatesFile); len(fn) > 0 {
		if err := viterbi.WriteIntsFile(fn, states); err != nil {
			return err
		}
		glog.Infof("wrote hidden states to [%s]", fn)
	}
	return nil
}
