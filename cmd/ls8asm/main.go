// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8asm assembles LS-8 assembly language into an LS-8 program file.
package main

import (
	"fmt"
	goio "io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

func init() {
	log.SetFlags(0)
	log.SetPrefix("ls8asm: ")
}

// romOf converts an assembled program to a commented program image.
func romOf(prog *cpu.Program) (rom *io.Rom) {
	rom = &io.Rom{
		Data: prog.Binary(),
	}

	rom.Comment = make([]string, len(rom.Data))
	for _, st := range prog.Statements {
		if len(st.Bytes) == 0 {
			continue
		}
		rom.Comment[st.Pc] = strings.Join(st.Words, " ")
	}

	return
}

// newRootCmd builds the ls8asm command.
func newRootCmd() *cobra.Command {
	var output string
	var defines []string
	var verbose bool

	cmd := &cobra.Command{
		Use:           "ls8asm SOURCE",
		Short:         f("Assemble an LS-8 program"),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cmd.SilenceUsage = true

			inf, err := os.Open(args[0])
			if err != nil {
				return
			}
			defer inf.Close()

			asm := &cpu.Assembler{Verbose: verbose}
			for _, define := range defines {
				name, value, ok := strings.Cut(define, "=")
				if !ok {
					value = "1"
				}
				asm.Predefine(name, value)
			}

			prog, err := asm.Parse(inf)
			if err != nil {
				err = fmt.Errorf("%v: %w", args[0], err)
				return
			}

			var ouf goio.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				var file *os.File
				file, err = os.Create(output)
				if err != nil {
					return
				}
				defer file.Close()
				ouf = file
			}

			_, err = romOf(prog).WriteTo(ouf)
			return
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", f("Program file to write"))
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, f("Predefine an equate, NAME=VALUE"))
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, f("Verbose mode"))

	return cmd
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Fatal(err)
	}
}
