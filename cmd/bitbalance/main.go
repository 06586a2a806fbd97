// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command bitbalance runs one bit balance computation on a chosen engine
// variant and prints the result, optionally tracing every clock step.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/db47h/bitbalance"
)

var rootCmd = &cobra.Command{
	Use:          "bitbalance",
	Short:        "Cycle-accurate ones/zeros balance engine.",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run [flags] value",
	Short: "Compute 2*popcount(value) - width on the selected engine variant.",
	Long: `Compute 2*popcount(value) - width on the selected engine variant.
The value is parsed with the usual Go prefixes (0b..., 0x..., decimal) and
truncated to the configured width.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width := getInt(cmd, "width")
		trace := getBool(cmd, "trace")
		name := getString(cmd, "variant")

		if trace {
			log.SetLevel(log.DebugLevel)
		}
		variant, err := bitbalance.ParseVariant(name)
		if err != nil {
			return err
		}
		value, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return errors.Wrapf(err, "bad input value %q", args[0])
		}

		e, err := bitbalance.New(bitbalance.Config{Width: width}, variant)
		if err != nil {
			return err
		}

		in := bitbalance.Input{Start: true, Value: value}
		for step := 0; ; step++ {
			e.Step(in)
			log.Debugf("step %3d: start=%-5v done=%-5v result=%d", step, in.Start, e.Done(), e.Result())
			in = bitbalance.Input{}
			if e.Done() {
				fmt.Printf("width=%d value=%#x result=%d (after %d steps)\n", width, value, e.Result(), step+1)
				return nil
			}
			if step > 4*width+8 {
				return errors.Errorf("engine did not complete after %d steps", step+1)
			}
		}
	},
}

func getInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	if err != nil {
		panic(err)
	}
	return v
}

func getBool(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return v
}

func getString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return v
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntP("width", "w", 8, "input width in bits")
	runCmd.Flags().StringP("variant", "m", bitbalance.TwoProc.String(),
		"engine variant (twoproc, oneproc, fsm, resetfsm, structural, registered)")
	runCmd.Flags().BoolP("trace", "t", false, "log every clock step")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
