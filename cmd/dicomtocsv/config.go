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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/openimaging/dicomval/dicom"
)

// queryConfig is the resolved set of columns to extract per file
type queryConfig struct {
	Columns []dicom.DataElementTag
	Header  bool
}

// queryFile maps the TOML query file keys onto queryConfig
type queryFile struct {
	Columns []string `toml:"columns"`
	Header  bool     `toml:"header"`
}

// defaultColumns mirror the series-level attributes queried when no keys
// are given
var defaultColumns = []dicom.DataElementTag{
	dicom.PatientNameTag,
	dicom.PatientIDTag,
	dicom.StudyDateTag,
	dicom.ModalityTag,
	dicom.StudyInstanceUIDTag,
	dicom.SeriesInstanceUIDTag,
}

func defaultQueryConfig() queryConfig {
	return queryConfig{Columns: defaultColumns}
}

// loadQueryConfig overlays the TOML query file onto the defaults
func loadQueryConfig(path string) (queryConfig, error) {
	cfg := defaultQueryConfig()

	var raw queryFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return queryConfig{}, fmt.Errorf("load query file: %w", err)
	}

	if meta.IsDefined("columns") {
		tags, err := parseTagKeys(raw.Columns)
		if err != nil {
			return queryConfig{}, err
		}
		cfg.Columns = tags
	}
	if meta.IsDefined("header") {
		cfg.Header = raw.Header
	}

	return cfg, nil
}

// parseTagKey parses a tag key in "GGGG,EEEE", "(GGGG,EEEE)" or
// "0xGGGGEEEE" form
func parseTagKey(key string) (dicom.DataElementTag, error) {
	s := strings.TrimSpace(key)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	if group, element, ok := strings.Cut(s, ","); ok {
		g, err := strconv.ParseUint(strings.TrimSpace(group), 16, 16)
		if err != nil {
			return 0, fmt.Errorf("bad group number in key %q: %v", key, err)
		}
		e, err := strconv.ParseUint(strings.TrimSpace(element), 16, 16)
		if err != nil {
			return 0, fmt.Errorf("bad element number in key %q: %v", key, err)
		}
		return dicom.NewDataElementTag(uint16(g), uint16(e)), nil
	}

	t, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad tag key %q: %v", key, err)
	}
	return dicom.DataElementTag(t), nil
}

func parseTagKeys(keys []string) ([]dicom.DataElementTag, error) {
	tags := make([]dicom.DataElementTag, 0, len(keys))
	for _, key := range keys {
		t, err := parseTagKey(key)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
