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
	"fmt"
	"strconv"
)

// AppendValueToString appends value i in human-readable form to buf and
// returns the extended buffer. Be cautious when calling this for ST, LT or
// UT values: the result might be very long and might contain non-printable
// bytes. Sequence items and nested multiplex values append nothing.
func (v Value) AppendValueToString(buf []byte, i uint32) []byte {
	s := v.v
	if s == nil || i >= s.numValues {
		return buf
	}

	switch p := s.payload.(type) {
	case []byte:
		if s.vr.isText() {
			a, b := s.substring(p, i)
			return append(buf, p[a:b]...)
		}
		if i < uint32(len(p)) {
			return strconv.AppendUint(buf, uint64(p[i]), 10)
		}
	case []int16:
		return strconv.AppendInt(buf, int64(p[i]), 10)
	case []uint16:
		return strconv.AppendUint(buf, uint64(p[i]), 10)
	case []int32:
		return strconv.AppendInt(buf, int64(p[i]), 10)
	case []uint32:
		return strconv.AppendUint(buf, uint64(p[i]), 10)
	case []float32:
		return strconv.AppendFloat(buf, float64(p[i]), 'g', -1, 32)
	case []float64:
		return strconv.AppendFloat(buf, p[i], 'g', -1, 64)
	case []DataElementTag:
		return append(buf, p[i].String()...)
	}
	return buf
}

// String renders all values joined by backslashes, for diagnostic display.
// Sequences and multiplex storage render as an item count.
func (v Value) String() string {
	s := v.v
	if s == nil {
		return ""
	}

	switch s.payload.(type) {
	case []Item, []Value:
		return fmt.Sprintf("(%d items)", s.numValues)
	}

	var buf []byte
	for i := uint32(0); i < s.numValues; i++ {
		if i > 0 {
			buf = append(buf, '\\')
		}
		buf = v.AppendValueToString(buf, i)
	}
	return string(buf)
}
