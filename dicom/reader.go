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

package dicom

import (
	"encoding/binary"
	"fmt"
	"io"
)

// dcmReader is a wrapper around io.Reader, providing convenience methods
// for parsing tags, numbers and strings
type dcmReader struct {
	r io.Reader
}

func newDcmReader(r io.Reader) *dcmReader {
	return &dcmReader{r}
}

func (dr *dcmReader) Read(p []byte) (int, error) {
	return dr.r.Read(p)
}

// Tag reads a (group, element) pair in the given byte order
func (dr *dcmReader) Tag(order binary.ByteOrder) (DataElementTag, error) {
	group, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}
	element, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}

	return NewDataElementTag(group, element), nil
}

// Limit returns a dcmReader that shares the same underlying io.Reader and
// returns EOF after reading n bytes
func (dr *dcmReader) Limit(n int64) *dcmReader {
	return &dcmReader{io.LimitReader(dr.r, n)}
}

// Skip advances the input stream by n bytes
func (dr *dcmReader) Skip(n int64) error {
	_, err := io.CopyN(io.Discard, dr.r, n)
	return err
}

// String returns a string of length n from the input stream
func (dr *dcmReader) String(n int64) (string, error) {
	b, err := dr.Bytes(n)
	return string(b), err
}

// Bytes returns a byte array of size n from the input stream
func (dr *dcmReader) Bytes(n int64) ([]byte, error) {
	b := make([]byte, n)
	gotN, err := io.ReadAtLeast(dr.r, b, int(n))
	if err != nil && gotN != int(n) {
		return nil, fmt.Errorf("expected to read %d bytes but got %d: %v", n, gotN, err)
	}
	return b, nil
}

// UInt32 returns a uint32 from the input stream
func (dr *dcmReader) UInt32(order binary.ByteOrder) (uint32, error) {
	var b uint32
	err := binary.Read(dr.r, order, &b)
	return b, err
}

// UInt16 returns a uint16 from the input stream
func (dr *dcmReader) UInt16(order binary.ByteOrder) (uint16, error) {
	var b uint16
	err := binary.Read(dr.r, order, &b)
	return b, err
}
