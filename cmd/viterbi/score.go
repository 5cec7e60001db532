// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akualab/viterbi"
	"github.com/akualab/viterbi/alphabet"
	"github.com/akualab/viterbi/model/hmm"
	"github.com/golang/glog"
	"github.com/urfave/cli"
)

var scoreCommand = cli.Command{
	Name:    "score",
	Aliases: []string{"s"},
	Usage:   "Compares a decoded state sequence with a reference.",
	Description: `
prints the fraction of time steps where the hypothesis matches the
reference, and both collapsed messages.

ex:
$ viterbi score --ref states.txt --hyp data.txt
`,
	Action: scoreAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-dir, d", Usage: "dir for relative file names"},
		cli.StringFlag{Name: "ref", Usage: "reference state sequence file"},
		cli.StringFlag{Name: "hyp", Usage: "decoded state sequence file"},
		cli.StringFlag{Name: "alphabet", Usage: "symbol for each state, in state order"},
		cli.IntFlag{Name: "truncate", Usage: "number of trailing states ignored when building the messages"},
	},
}

func scoreAction(c *cli.Context) error {

	config := initApp(c)

	// Defaults to the files written by the generate and decode commands.
	ref := config.Generator.StatesFile
	hyp := config.Output.PathFile
	stringParam(c, "data-dir", &config.DataDir)
	stringParam(c, "ref", &ref)
	stringParam(c, "hyp", &hyp)
	stringParam(c, "alphabet", &config.Decoder.Alphabet)
	intParam(c, "truncate", &config.Decoder.Truncate)
	viterbi.Fatal(config.Validate())

	viterbi.Fatal(score(os.Stdout, config, config.Path(ref), config.Path(hyp)))
	return nil
}

func score(w io.Writer, config *viterbi.Config, refFile, hypFile string) error {

	ref, err := viterbi.ReadIntsFile(refFile)
	if err != nil {
		return err
	}
	hyp, err := viterbi.ReadIntsFile(hypFile)
	if err != nil {
		return err
	}
	acc, err := hmm.Accuracy(ref, hyp)
	if err != nil {
		return err
	}
	glog.V(1).Infof("scored [%s] against [%s]", hypFile, refFile)

	ab, err := alphabet.New(config.Decoder.Alphabet)
	if err != nil {
		return err
	}
	refMsg, err := ab.Collapse(ref, config.Decoder.Truncate)
	if err != nil {
		return err
	}
	hypMsg, err := ab.Collapse(hyp, config.Decoder.Truncate)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "REF: %s\nHYP: %s\nacc: %.4f\n", refMsg, hypMsg, acc)
	return nil
}
