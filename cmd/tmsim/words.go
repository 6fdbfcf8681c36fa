package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readWords reads one word per line, whitespace-stripped, from either the
// --words file or the command's stdin. A blank line denotes the empty word.
func readWords(cmd *cobra.Command, wordsPath string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()

	if wordsPath != "" {
		f, err := os.Open(wordsPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()

		r = f
	}

	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, strings.TrimSpace(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
