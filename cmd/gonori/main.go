// Command gonori builds and runs the Korean morphological tokenizer:
// compiling a MeCab-format source tree into the on-disk dictionary
// artifacts, and tokenizing text against a compiled dictionary.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:           "gonori",
		Short:         "Korean morphological tokenizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCommand(), newTokenizeCommand(), newTokenizeFileCommand())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("gonori failed")
		os.Exit(1)
	}
}
