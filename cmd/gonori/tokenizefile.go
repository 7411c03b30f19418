package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/steosofficial/gonori/dictionary"
	"github.com/steosofficial/gonori/tokenizer"
)

func newTokenizeFileCommand() *cobra.Command {
	var dictionaryPath, dataPath string
	var nLines int

	cmd := &cobra.Command{
		Use:   "tokenize-file",
		Short: "Tokenize lines from a file and report elapsed time",
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

			lines, err := readLines(dataPath, nLines)
			if err != nil {
				return err
			}

			log.Info().Int("lines", len(lines)).Msg("tokenizing lines, measuring elapsed time")
			start := time.Now()
			for _, line := range lines {
				tok.Tokenize(line)
			}
			log.Info().Dur("elapsed", time.Since(start)).Msg("tokenize-file complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dictionaryPath, "dictionary-path", "d", "", "compiled dictionary directory path")
	cmd.Flags().StringVar(&dataPath, "data", "", "input file, one text per line")
	cmd.Flags().IntVarP(&nLines, "n-lines", "n", 1000, "number of leading lines to tokenize")
	cmd.MarkFlagRequired("dictionary-path")
	cmd.MarkFlagRequired("data")

	return cmd
}

// readLines reads up to n leading lines from path in order, since the
// reported elapsed time depends on processing them in sequence.
func readLines(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < n {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return lines, nil
}
