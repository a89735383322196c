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
	"bytes"
	"strconv"
	"strings"
)

// number covers every numeric element type the conversion engine moves
// values through
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func castSlice[D number, S number](src []S) []D {
	out := make([]D, len(src))
	for i, x := range src {
		out[i] = D(x)
	}
	return out
}

// parseNumber parses a backslash-delimited substring per the numeric-string
// conventions: integer-string first, decimal-string as fallback. A failed
// parse converts to zero.
func parseNumber[T number](s string) T {
	s = strings.TrimSpace(s)
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return T(iv)
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return T(fv)
	}
	return 0
}

// formatNumber renders a numeric element in its canonical human-readable
// form
func formatNumber[T number](x T) string {
	switch t := any(x).(type) {
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strconv.FormatInt(int64(x), 10)
}

// contentEnd returns the payload length with at most one trailing pad byte
// removed, so that the even-length padding never leaks into extracted
// values
func (s *storage) contentEnd(p []byte) int {
	end := len(p)
	if end > 0 && p[end-1] == s.vr.pad {
		end--
	}
	return end
}

// substring locates the i-th backslash-delimited substring by scanning
// delimiters left to right. Empty substrings produced by leading, trailing
// or adjacent delimiters are valid values. An out-of-range index yields an
// empty range at the end of the buffer.
func (s *storage) substring(p []byte, i uint32) (int, int) {
	limit := s.contentEnd(p)
	if !s.vr.isDelimited() {
		if i == 0 {
			return 0, limit
		}
		return limit, limit
	}

	start := 0
	for j := uint32(0); j < i; j++ {
		k := bytes.IndexByte(p[start:limit], '\\')
		if k < 0 {
			return limit, limit
		}
		start += k + 1
	}
	if k := bytes.IndexByte(p[start:limit], '\\'); k >= 0 {
		return start, start + k
	}
	return start, limit
}

// getNumericValues extracts n values starting at i, converted to T. Out of
// range positions are zero-filled; conversions the VR forbids (sequences,
// multiplex storage, attribute tags) yield zero.
func getNumericValues[T number](s *storage, i, n uint32) []T {
	out := make([]T, n)
	if s == nil {
		return out
	}

	switch p := s.payload.(type) {
	case []byte:
		if s.vr.isText() {
			for k := range out {
				idx := i + uint32(k)
				if idx >= s.numValues {
					break
				}
				a, b := s.substring(p, idx)
				out[k] = parseNumber[T](string(p[a:b]))
			}
		} else {
			copyCast(out, p, i)
		}
	case []int16:
		copyCast(out, p, i)
	case []uint16:
		copyCast(out, p, i)
	case []int32:
		copyCast(out, p, i)
	case []uint32:
		copyCast(out, p, i)
	case []float32:
		copyCast(out, p, i)
	case []float64:
		copyCast(out, p, i)
	}
	return out
}

func copyCast[D number, S number](out []D, p []S, i uint32) {
	for k := range out {
		idx := uint64(i) + uint64(k)
		if idx >= uint64(len(p)) {
			break
		}
		out[k] = D(p[idx])
	}
}

// GetStringValues extracts n values starting at position i, converted to
// strings. Text sources yield the trimmed substrings; numeric sources are
// rendered canonically; forbidden conversions yield empty strings.
func (v Value) GetStringValues(i, n uint32) []string {
	out := make([]string, n)
	s := v.v
	if s == nil {
		return out
	}

	switch p := s.payload.(type) {
	case []byte:
		if s.vr.isText() {
			for k := range out {
				idx := i + uint32(k)
				if idx >= s.numValues {
					break
				}
				a, b := s.substring(p, idx)
				out[k] = string(p[a:b])
			}
		} else {
			for k := range out {
				idx := uint64(i) + uint64(k)
				if idx >= uint64(len(p)) {
					break
				}
				out[k] = strconv.FormatUint(uint64(p[idx]), 10)
			}
		}
	case []int16:
		formatInto(out, p, i)
	case []uint16:
		formatInto(out, p, i)
	case []int32:
		formatInto(out, p, i)
	case []uint32:
		formatInto(out, p, i)
	case []float32:
		formatInto(out, p, i)
	case []float64:
		formatInto(out, p, i)
	}
	return out
}

func formatInto[S number](out []string, p []S, i uint32) {
	for k := range out {
		idx := uint64(i) + uint64(k)
		if idx >= uint64(len(p)) {
			break
		}
		out[k] = formatNumber(p[idx])
	}
}

// GetTagValues extracts n attribute tags starting at position i. Only AT
// storage converts; everything else yields zero tags.
func (v Value) GetTagValues(i, n uint32) []DataElementTag {
	out := make([]DataElementTag, n)
	if v.v == nil {
		return out
	}
	if p, ok := v.v.payload.([]DataElementTag); ok {
		for k := range out {
			idx := uint64(i) + uint64(k)
			if idx >= uint64(len(p)) {
				break
			}
			out[k] = p[idx]
		}
	}
	return out
}

// GetByteValues extracts n values starting at position i as bytes
func (v Value) GetByteValues(i, n uint32) []byte {
	return getNumericValues[byte](v.v, i, n)
}

// GetInt16Values extracts n values starting at position i as int16
func (v Value) GetInt16Values(i, n uint32) []int16 {
	return getNumericValues[int16](v.v, i, n)
}

// GetUint16Values extracts n values starting at position i as uint16
func (v Value) GetUint16Values(i, n uint32) []uint16 {
	return getNumericValues[uint16](v.v, i, n)
}

// GetInt32Values extracts n values starting at position i as int32
func (v Value) GetInt32Values(i, n uint32) []int32 {
	return getNumericValues[int32](v.v, i, n)
}

// GetUint32Values extracts n values starting at position i as uint32
func (v Value) GetUint32Values(i, n uint32) []uint32 {
	return getNumericValues[uint32](v.v, i, n)
}

// GetFloat32Values extracts n values starting at position i as float32
func (v Value) GetFloat32Values(i, n uint32) []float32 {
	return getNumericValues[float32](v.v, i, n)
}

// GetFloat64Values extracts n values starting at position i as float64
func (v Value) GetFloat64Values(i, n uint32) []float64 {
	return getNumericValues[float64](v.v, i, n)
}

// GetString converts the i-th value to a string, or returns "" when the
// index is out of range or the conversion is not permitted
func (v Value) GetString(i uint32) string {
	return v.GetStringValues(i, 1)[0]
}

// GetByte converts the i-th value to a byte
func (v Value) GetByte(i uint32) byte {
	return getNumericValues[byte](v.v, i, 1)[0]
}

// GetInt16 converts the i-th value to an int16
func (v Value) GetInt16(i uint32) int16 {
	return getNumericValues[int16](v.v, i, 1)[0]
}

// GetUint16 converts the i-th value to a uint16
func (v Value) GetUint16(i uint32) uint16 {
	return getNumericValues[uint16](v.v, i, 1)[0]
}

// GetInt32 converts the i-th value to an int32
func (v Value) GetInt32(i uint32) int32 {
	return getNumericValues[int32](v.v, i, 1)[0]
}

// GetUint32 converts the i-th value to a uint32
func (v Value) GetUint32(i uint32) uint32 {
	return getNumericValues[uint32](v.v, i, 1)[0]
}

// GetFloat32 converts the i-th value to a float32
func (v Value) GetFloat32(i uint32) float32 {
	return getNumericValues[float32](v.v, i, 1)[0]
}

// GetFloat64 converts the i-th value to a float64
func (v Value) GetFloat64(i uint32) float64 {
	return getNumericValues[float64](v.v, i, 1)[0]
}

// GetTag returns the i-th attribute tag of an AT value
func (v Value) GetTag(i uint32) DataElementTag {
	return v.GetTagValues(i, 1)[0]
}

// AsString converts the value to a string if its multiplicity is exactly
// one, else returns ""
func (v Value) AsString() string {
	if v.NumberOfValues() != 1 {
		return ""
	}
	return v.GetString(0)
}

// AsByte converts a single-valued value to a byte, else returns 0
func (v Value) AsByte() byte {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetByte(0)
}

// AsInt16 converts a single-valued value to an int16, else returns 0
func (v Value) AsInt16() int16 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetInt16(0)
}

// AsUint16 converts a single-valued value to a uint16, else returns 0
func (v Value) AsUint16() uint16 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetUint16(0)
}

// AsInt32 converts a single-valued value to an int32, else returns 0
func (v Value) AsInt32() int32 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetInt32(0)
}

// AsUint32 converts a single-valued value to a uint32, else returns 0
func (v Value) AsUint32() uint32 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetUint32(0)
}

// AsFloat32 converts a single-valued value to a float32, else returns 0
func (v Value) AsFloat32() float32 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetFloat32(0)
}

// AsFloat64 converts a single-valued value to a float64, else returns 0
func (v Value) AsFloat64() float64 {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetFloat64(0)
}

// AsTag converts a single-valued AT value to its tag, else returns the
// zero tag
func (v Value) AsTag() DataElementTag {
	if v.NumberOfValues() != 1 {
		return 0
	}
	return v.GetTag(0)
}
