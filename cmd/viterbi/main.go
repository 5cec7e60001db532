// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command viterbi decodes hidden messages using discrete HMMs.
//
//	$ viterbi decode --data-dir ./data
//	$ viterbi generate --length 5000 --seed 7
//	$ viterbi score --ref states.txt --hyp data.txt
package main

import (
	"flag"
	"os"
	osuser "os/user"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/akualab/viterbi"
	"github.com/golang/glog"
	"github.com/urfave/cli"
)

const (
	appName    = "viterbi"
	appVersion = "0.1"
)

// Properties of the viterbi tool, read from a TOML file.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

var props = new(Properties)

func main() {

	currDir, err := os.Getwd()
	viterbi.Fatal(err)
	props, err = readProperties(propertiesPath())
	if err != nil {
		glog.Warningf("unable to read properties file - %s", err)
		props = new(Properties)
	}
	defaultLogDir := filepath.Join(currDir, "log")
	if len(props.LogDir) > 0 {
		defaultLogDir = props.LogDir
	}

	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Decodes hidden messages using discrete hidden Markov models."
	app.Version = appVersion
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config-file, c", Usage: "YAML config file, flags override its values"},
		cli.StringFlag{Name: "log", Value: defaultLogDir, Usage: "log output dir"},
		cli.BoolTFlag{Name: "log-stderr", Usage: "logs are written to standard error instead of files"},
		cli.StringFlag{Name: "log-level", Value: "0", Usage: "enable V-leveled logging at the specified level"},
	}
	app.Before = initGlog
	app.Commands = []cli.Command{
		decodeCommand,
		generateCommand,
		scoreCommand,
	}

	defer glog.Flush()
	viterbi.Fatal(app.Run(os.Args))
}

// propertiesPath returns $VITERBI_PROPERTIES or ~/.config/viterbi/properties.toml.
func propertiesPath() string {

	if p := os.Getenv("VITERBI_PROPERTIES"); len(p) > 0 {
		return p
	}
	propPath, _ := os.Getwd()
	if u, err := osuser.Current(); err == nil {
		propPath = filepath.Join(u.HomeDir, ".config", appName)
	}
	return filepath.Join(propPath, "properties.toml")
}

func readProperties(fn string) (*Properties, error) {
	p := new(Properties)
	if _, err := toml.DecodeFile(fn, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Creates dir if it doesn't exist.
func checkDir(path string) error {

	if len(path) == 0 {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

func initGlog(c *cli.Context) error {

	if err := checkDir(c.GlobalString("log")); err != nil {
		return err
	}
	if c.GlobalBool("log-stderr") {
		flag.Set("alsologtostderr", "true")
	}
	flag.Set("v", c.GlobalString("log-level"))
	flag.Set("log_dir", c.GlobalString("log"))
	glog.V(1).Infof("app version: %s, properties: %+v", appVersion, *props)
	return nil
}

// initApp loads the config file, if any, and returns the config
// that command flags will override.
func initApp(c *cli.Context) *viterbi.Config {

	config := viterbi.DefaultConfig()
	if fn := c.GlobalString("config-file"); len(fn) > 0 {
		var err error
		config, err = viterbi.ReadConfig(fn)
		viterbi.Fatal(err)
		glog.Infof("read config file [%s]", fn)
	}
	if len(config.DataDir) == 0 {
		config.DataDir = props.Workspace
	}
	viterbi.Fatal(checkDir(props.Workspace))
	return config
}

// Params set from flags override config values when the flag is set.

func stringParam(c *cli.Context, name string, v *string) {
	if c.IsSet(name) {
		*v = c.String(name)
	}
}

func intParam(c *cli.Context, name string, v *int) {
	if c.IsSet(name) {
		*v = c.Int(name)
	}
}

func int64Param(c *cli.Context, name string, v *int64) {
	if c.IsSet(name) {
		*v = c.Int64(name)
	}
}

func floatParam(c *cli.Context, name string, v *float64) {
	if c.IsSet(name) {
		*v = c.Float64(name)
	}
}
