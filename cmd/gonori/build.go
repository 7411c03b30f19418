package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/steosofficial/gonori/dictionary"
)

func newBuildCommand() *cobra.Command {
	var inputPath, outputPath string
	var normalize bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a compiled dictionary from a MeCab dictionary source tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("input-path", inputPath).
				Str("output-path", outputPath).
				Bool("normalize", normalize).
				Msg("building dictionary from MeCab dictionary")

			builder := dictionary.NewBuilder(normalize)
			if err := builder.Build(inputPath, outputPath); err != nil {
				return err
			}
			log.Info().Msg("dictionary built successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input-path", "i", "", "input directory path")
	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "output directory path")
	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "NFKC-normalize input token files")
	cmd.MarkFlagRequired("input-path")
	cmd.MarkFlagRequired("output-path")

	return cmd
}
