// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Searches the most likely state sequence given the model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akualab/viterbi"
	"github.com/akualab/viterbi/alphabet"
	"github.com/akualab/viterbi/metrics"
	"github.com/akualab/viterbi/model/hmm"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

var decodeCommand = cli.Command{
	Name:    "decode",
	Aliases: []string{"d"},
	Usage:   "Searches the most likely hidden message given the model.",
	Description: `
runs the viterbi decoder and prints the decoded message.

ex:
$ viterbi decode --data-dir ./data --path-out data.txt
`,
	Action: decodeAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-dir, d", Usage: "dir for relative file names"},
		cli.StringFlag{Name: "transition", Usage: "transition matrix file"},
		cli.StringFlag{Name: "emission", Usage: "emission matrix file"},
		cli.StringFlag{Name: "initial", Usage: "initial state distribution file"},
		cli.StringFlag{Name: "observations, o", Usage: "observations file"},
		cli.StringFlag{Name: "path-out, p", Usage: "output file for the state sequence, one state per line"},
		cli.StringFlag{Name: "results, r", Usage: "results file, one JSON object is appended per run"},
		cli.StringFlag{Name: "metrics-file", Usage: "write decoder metrics in Prometheus text format"},
		cli.BoolFlag{Name: "alignment", Usage: "add symbol start and end times to the results file"},
		cli.StringFlag{Name: "alphabet", Usage: "symbol for each state, in state order"},
		cli.IntFlag{Name: "truncate", Usage: "number of trailing states ignored when building the message"},
		cli.IntFlag{Name: "workers", Usage: "goroutines used to compute each time step"},
		cli.Float64Flag{Name: "tolerance", Usage: "max deviation from one allowed in distribution sums"},
		cli.BoolFlag{Name: "legacy-termination", Usage: "pick the final state like older releases, not by score"},
	},
}

func decodeAction(c *cli.Context) error {

	config := initApp(c)

	// Command flags overwrite config file params.
	stringParam(c, "data-dir", &config.DataDir)
	stringParam(c, "transition", &config.Input.Transition)
	stringParam(c, "emission", &config.Input.Emission)
	stringParam(c, "initial", &config.Input.Initial)
	stringParam(c, "observations", &config.Input.Observations)
	stringParam(c, "path-out", &config.Output.PathFile)
	stringParam(c, "results", &config.Output.ResultsFile)
	stringParam(c, "metrics-file", &config.Output.MetricsFile)
	stringParam(c, "alphabet", &config.Decoder.Alphabet)
	intParam(c, "truncate", &config.Decoder.Truncate)
	intParam(c, "workers", &config.Decoder.Workers)
	floatParam(c, "tolerance", &config.Decoder.Tolerance)

	// If bool flag exists, set param to true overriding config value.
	if c.Bool("legacy-termination") {
		config.Decoder.LegacyTermination = true
	}
	if c.Bool("alignment") {
		config.Output.Alignment = true
	}
	viterbi.Fatal(config.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := decode(ctx, config)
	viterbi.Fatal(err)
	fmt.Println(result.Message)
	return nil
}

// decode runs a full decode as described by config and writes the outputs
// named in it.
func decode(ctx context.Context, config *viterbi.Config) (*viterbi.Result, error) {

	m, err := viterbi.ReadModel(config)
	if err != nil {
		return nil, err
	}
	ab, err := alphabet.New(config.Decoder.Alphabet)
	if err != nil {
		return nil, err
	}
	if ab.Len() != m.NumStates() {
		return nil, fmt.Errorf("alphabet has %d symbols but the model has %d states", ab.Len(), m.NumStates())
	}

	options := []hmm.Option{
		hmm.Workers(config.Decoder.Workers),
		hmm.Tolerance(config.Decoder.Tolerance),
		hmm.LegacyTermination(config.Decoder.LegacyTermination),
	}
	var reg *prometheus.Registry
	if len(config.Output.MetricsFile) > 0 {
		reg = prometheus.NewRegistry()
		rec, err := metrics.NewDecoder(reg)
		if err != nil {
			return nil, err
		}
		options = append(options, hmm.WithRecorder(rec))
	}

	res, err := hmm.NewDecoder(options...).Decode(ctx, m)
	if reg != nil {
		if e := metrics.WriteFile(config.Path(config.Output.MetricsFile), reg); e != nil {
			glog.Errorf("failed to write metrics: %s", e)
		}
	}
	if err != nil {
		return nil, err
	}

	msg, err := ab.Collapse(res.Path, config.Decoder.Truncate)
	if err != nil {
		return nil, err
	}
	result := viterbi.NewResult(m, res, msg)
	if config.Output.Alignment {
		if result.Alignment, err = ab.Align(res.Path, config.Decoder.Truncate); err != nil {
			return nil, err
		}
	}
	glog.Infof("id: %s, log prob: %g, message length: %d", result.ID, result.LogProb, len(msg))

	if fn := config.Path(config.Output.PathFile); len(fn) > 0 {
		if err := viterbi.WriteIntsFile(fn, res.Path); err != nil {
			return nil, err
		}
		glog.Infof("wrote state sequence to [%s]", fn)
	}
	if fn := config.Path(config.Output.ResultsFile); len(fn) > 0 {
		if err := appendResult(fn, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func appendResult(fn string, r *viterbi.Result) error {

	f, err := os.OpenFile(fn, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := viterbi.WriteResult(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
