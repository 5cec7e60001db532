// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exports decoder statistics to Prometheus.
package metrics

import (
	"context"
	"errors"

	"github.com/akualab/viterbi/model/hmm"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "viterbi"

// Decoder collects statistics about decodes. It implements hmm.Recorder.
type Decoder struct {
	decodes   *prometheus.CounterVec
	timesteps prometheus.Counter
	states    prometheus.Gauge
	duration  *prometheus.HistogramVec
}

var _ hmm.Recorder = (*Decoder)(nil)

// NewDecoder creates the collectors and registers them with reg.
func NewDecoder(reg prometheus.Registerer) (*Decoder, error) {

	d := &Decoder{
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decodes_total",
			Help:      "Number of decodes by outcome.",
		}, []string{"outcome"}),
		timesteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timesteps_total",
			Help:      "Number of observations decoded successfully.",
		}),
		states: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "states",
			Help:      "Number of hidden states in the last decoded model.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each decoding phase.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"phase"}),
	}

	for _, c := range []prometheus.Collector{d.decodes, d.timesteps, d.states, d.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Record implements hmm.Recorder.
func (d *Decoder) Record(s hmm.Stats, err error) {

	d.decodes.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return
	}
	d.timesteps.Add(float64(s.Timesteps))
	d.states.Set(float64(s.States))
	d.duration.WithLabelValues("forward").Observe(s.Forward.Seconds())
	d.duration.WithLabelValues("backtrack").Observe(s.Backtrack.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, hmm.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, hmm.ErrObservationOutOfRange):
		return "observation_out_of_range"
	case errors.Is(err, hmm.ErrInvalidProbability):
		return "invalid_probability"
	case errors.Is(err, hmm.ErrMalformedModel):
		return "malformed_model"
	}
	return "error"
}

// WriteFile writes all metrics gathered by g to a file in the text
// exposition format, for the node exporter textfile collector.
func WriteFile(fn string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(fn, g)
}
