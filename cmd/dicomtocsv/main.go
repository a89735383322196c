// Copyright 2026 The dicomval Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// dicomtocsv dumps selected metadata from DICOM files to a CSV file.
// Attributes are selected with repeated -k keys or a TOML query file; when
// neither is given, a default series-level attribute set is used. A file
// whose attribute is missing or unconvertible produces an empty CSV field
// rather than failing the run.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openimaging/dicomval/dicom"
)

var cli struct {
	Key    []string `short:"k" placeholder:"GGGG,EEEE" help:"Tag to be extracted, in hexadecimal GGGG,EEEE form. Repeatable."`
	Query  string   `short:"q" type:"existingfile" help:"TOML query file listing the columns to extract."`
	Output string   `short:"o" default:"-" help:"File for the query results, - for stdout."`
	Header bool     `help:"Write a header row with the tag keys."`
	Silent bool     `help:"Do not report any progress information."`
	Files  []string `arg:"" name:"file" type:"existingfile" help:"DICOM files to read."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("dicomtocsv"),
		kong.Description("Dump selected metadata from DICOM files to a csv file."),
		kong.UsageOnError(),
	)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cli.Silent {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	ctx.FatalIfErrorf(run())
}

func run() error {
	cfg, err := resolveQuery()
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cli.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	w := csv.NewWriter(out)
	if cfg.Header {
		header := make([]string, len(cfg.Columns))
		for i, tag := range cfg.Columns {
			header[i] = tag.String()
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for _, file := range cli.Files {
		row, err := extractRow(file, cfg.Columns)
		if err != nil {
			log.Error().Str("file", file).Err(err).Msg("skipping unreadable file")
			continue
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
		log.Info().Str("file", file).Msg("extracted")
	}

	w.Flush()
	return w.Error()
}

// resolveQuery merges the query file, the -k keys and the defaults. Keys
// given with -k extend the query file's columns; first appearance sets the
// column number.
func resolveQuery() (queryConfig, error) {
	cfg := defaultQueryConfig()
	if cli.Query != "" {
		var err error
		cfg, err = loadQueryConfig(cli.Query)
		if err != nil {
			return queryConfig{}, err
		}
	}

	if len(cli.Key) > 0 {
		keys, err := parseTagKeys(cli.Key)
		if err != nil {
			return queryConfig{}, err
		}
		if cli.Query == "" {
			cfg.Columns = keys
		} else {
			cfg.Columns = appendNewTags(cfg.Columns, keys)
		}
	}
	if cli.Header {
		cfg.Header = true
	}

	return cfg, nil
}

func appendNewTags(columns, keys []dicom.DataElementTag) []dicom.DataElementTag {
	seen := map[dicom.DataElementTag]bool{}
	for _, tag := range columns {
		seen[tag] = true
	}
	for _, tag := range keys {
		if !seen[tag] {
			columns = append(columns, tag)
			seen[tag] = true
		}
	}
	return columns
}

func extractRow(file string, columns []dicom.DataElementTag) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := dicom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	row := make([]string, len(columns))
	for i, tag := range columns {
		row[i] = ds.Get(tag).String()
	}
	return row, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
