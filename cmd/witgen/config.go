package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/zkwitness/cmd/utils"
	"github.com/bnb-chain/zkwitness/core/witness"
	"github.com/bnb-chain/zkwitness/log"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       utils.WitnessFlags,
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return errors.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type witgenConfig struct {
	Witness   witness.Config
	Log       log.Config
	Workers   int
	OutputDir string `toml:",omitempty"`
}

func defaultConfig() witgenConfig {
	return witgenConfig{
		Witness: witness.DefaultConfig,
		Log:     log.DefaultConfig,
		Workers: utils.WorkersFlag.Value,
	}
}

func loadConfig(file string, cfg *witgenConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
func makeConfig(ctx *cli.Context) (witgenConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, errors.Wrap(err, "loading config")
		}
	}
	utils.SetWitnessConfig(ctx, &cfg.Witness)
	utils.SetLogConfig(ctx, &cfg.Log)
	if ctx.IsSet(utils.WorkersFlag.Name) {
		cfg.Workers = ctx.Int(utils.WorkersFlag.Name)
	}
	if ctx.IsSet(utils.OutputDirFlag.Name) {
		cfg.OutputDir = ctx.String(utils.OutputDirFlag.Name)
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
