package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/steosofficial/gonori/dictionary"
	"github.com/steosofficial/gonori/tokenizer"
)

func newTokenizeCommand() *cobra.Command {
	var dictionaryPath, text, graphOut string

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Tokenize text with a compiled dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Msg("reading dictionary")
			loadStart := time.Now()

			sys, err := dictionary.LoadSystemDictionary(dictionaryPath)
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}
			defer sys.Close()

			user := dictionary.NewUserDictionary(nil, sys.ConnectionCost.Additional)

			tok := tokenizer.New(sys, user)
			log.Info().Dur("elapsed", time.Since(loadStart)).Msg("tokenizer constructed")

			log.Info().Msg("tokenizing")

			var lattice tokenizer.Lattice
			if graphOut != "" {
				l, graph := tok.TokenizeWithGraph(text)
				lattice = l

				dot, err := graph.Render()
				if err != nil {
					return fmt.Errorf("render graphviz: %w", err)
				}
				log.Info().Str("graph-out", graphOut).Msg("writing graphviz")
				if err := os.WriteFile(graphOut, []byte(dot), 0o644); err != nil {
					return fmt.Errorf("write graphviz file %s: %w", graphOut, err)
				}
			} else {
				lattice = tok.Tokenize(text)
			}

			for _, token := range lattice {
				log.Info().
					Str("surface", token.Surface).
					Int("offset", token.Offset).
					Int("length", token.Length).
					Str("pos", token.Morpheme.FirstPOSTag().String()).
					Msg("token")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dictionaryPath, "dictionary-path", "d", "", "compiled dictionary directory path")
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to tokenize")
	cmd.Flags().StringVarP(&graphOut, "graph-out", "g", "", "optional Graphviz .dot output filepath")
	cmd.MarkFlagRequired("dictionary-path")
	cmd.MarkFlagRequired("text")

	return cmd
}
