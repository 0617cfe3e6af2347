// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8 runs an LS-8 program file.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrUsage is returned for a command line that cannot be run.
var ErrUsage = errors.New(f("usage"))

func init() {
	log.SetFlags(0)
	log.SetPrefix("ls8: ")
}

// newRootCmd builds the ls8 command.
func newRootCmd() *cobra.Command {
	var trace bool
	var verbose bool
	var memory uint

	cmd := &cobra.Command{
		Use:   "ls8 PROGRAM",
		Short: f("Run an LS-8 program file"),
		Long: f("Run an LS-8 program file. Each line of the file holds one " +
			"8-bit binary literal; '#' starts a comment."),
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return fmt.Errorf("%w: %v", ErrUsage, f("missing program file"))
			case len(args) > 1:
				return fmt.Errorf("%w: %v", ErrUsage, f("too many arguments provided"))
			}
			return nil
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			// From here on, errors are about the program, not the command line.
			cmd.SilenceUsage = true

			inf, err := os.Open(args[0])
			if err != nil {
				return
			}
			defer inf.Close()

			emu := emulator.NewEmulatorSize(memory)
			emu.Verbose = verbose
			emu.Tape.Output = cmd.OutOrStdout()
			if trace {
				emu.SetTrace(cmd.ErrOrStderr())
			}

			err = emu.Load(inf)
			if err != nil {
				err = fmt.Errorf("%v: %w", args[0], err)
				return
			}

			err = emu.Run()
			if err != nil {
				err = fmt.Errorf("%v: %w", args[0], err)
				return
			}

			return
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, f("Print machine state before each instruction"))
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, f("Verbose mode"))
	cmd.Flags().UintVarP(&memory, "memory", "m", cpu.MEMORY_SIZE, f("Memory size in bytes"))

	return cmd
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Print(err)
		if errors.Is(err, ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
