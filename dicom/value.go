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
	"strings"
)

// storage is the shared backing object behind a Value. Once a Value handle
// has been cloned, the payload is logically immutable: in-place writes are
// only permitted while the constructing handle is the sole owner.
//
// payload holds exactly one of:
// []byte (text VRs and OB/UN),
// []int16, []uint16, []int32, []uint32, []float32, []float64,
// []DataElementTag, []Item, []Value
type storage struct {
	refs      int32
	vr        *VR
	vl        uint32
	numValues uint32
	payload   interface{}
}

// Value is a lightweight handle referencing shared, reference-counted
// storage for a single DICOM attribute value field. The zero Value is
// invalid: every query on it reports zero or empty.
//
// Plain struct assignment produces a borrowed view that does not own a
// reference; use Clone to take a counted reference, and Clear (or Assign)
// to release one. Storage is freed when the last counted reference drops.
type Value struct {
	v *storage
}

// NewValue builds a value from the given data, converting it into the native
// encoding of the VR. Supported inputs are the scalar types string, int,
// int64, float64, DataElementTag and Item, and slices of string, byte,
// int16, uint16, int32, uint32, float32, float64, DataElementTag, Item and
// Value.
//
// Numeric input to a text VR is rendered in the VR's numeric-string form;
// string input to a binary VR is parsed per the integer-string or
// decimal-string convention. If the VR cannot represent the input, the
// resulting value is invalid.
func NewValue(vr *VR, data interface{}) Value {
	if vr == nil || data == nil {
		return Value{}
	}

	switch d := data.(type) {
	case string:
		return newFromStrings(vr, strings.Split(d, "\\"))
	case []string:
		return newFromStrings(vr, d)
	case int:
		return newFromNumbers(vr, []int64{int64(d)})
	case int64:
		return newFromNumbers(vr, []int64{d})
	case float64:
		return newFromNumbers(vr, []float64{d})
	case []byte:
		return newFromBytes(vr, d)
	case []int16:
		return newFromNumbers(vr, d)
	case []uint16:
		return newFromNumbers(vr, d)
	case []int32:
		return newFromNumbers(vr, d)
	case []uint32:
		return newFromNumbers(vr, d)
	case []float32:
		return newFromNumbers(vr, d)
	case []float64:
		return newFromNumbers(vr, d)
	case DataElementTag:
		return newFromTags(vr, []DataElementTag{d})
	case []DataElementTag:
		return newFromTags(vr, d)
	case Item:
		return newFromItems(vr, []Item{d})
	case []Item:
		return newFromItems(vr, d)
	case []Value:
		return newMultiplex(vr, d)
	}
	return Value{}
}

// newTextValue stores raw character data, padding odd lengths with the VR's
// pad byte. The multiplicity is counted from the backslash delimiters for
// delimited VRs and is 1 for free-form text.
func newTextValue(vr *VR, text []byte) Value {
	p := make([]byte, len(text), len(text)+1)
	copy(p, text)
	if len(p)%2 == 1 {
		p = append(p, vr.pad)
	}

	n := uint32(1)
	if vr.isDelimited() {
		n += uint32(bytes.Count(p, []byte{'\\'}))
	}

	return Value{&storage{
		refs:      1,
		vr:        vr,
		vl:        uint32(len(p)),
		numValues: n,
		payload:   p,
	}}
}

func newFromBytes(vr *VR, data []byte) Value {
	if vr.isText() {
		return newTextValue(vr, data)
	}
	if vr.kind == byteDataVR {
		p := make([]byte, len(data), len(data)+1)
		copy(p, data)
		if len(p)%2 == 1 {
			p = append(p, vr.pad)
		}
		return Value{&storage{
			refs:      1,
			vr:        vr,
			vl:        uint32(len(p)),
			numValues: uint32(len(data)),
			payload:   p,
		}}
	}
	return Value{}
}

// newFromStrings joins the given substrings for text VRs, or parses each
// substring as a number for binary VRs.
func newFromStrings(vr *VR, ss []string) Value {
	if vr.isText() {
		return newTextValue(vr, []byte(strings.Join(ss, "\\")))
	}

	switch vr.kind {
	case numberBinaryVR, byteDataVR:
		nums := make([]float64, len(ss))
		for i, s := range ss {
			nums[i] = parseNumber[float64](s)
		}
		return newFromNumbers(vr, nums)
	}
	return Value{}
}

// newFromNumbers converts same-typed numeric input into the VR's native
// element type. For text VRs each number is rendered and the results are
// joined with backslashes.
func newFromNumbers[S number](vr *VR, data []S) Value {
	if vr.isText() {
		ss := make([]string, len(data))
		for i, x := range data {
			ss[i] = formatNumber(x)
		}
		return newTextValue(vr, []byte(strings.Join(ss, "\\")))
	}

	var payload interface{}
	switch vr {
	case SSVR:
		payload = castSlice[int16](data)
	case USVR, OWVR:
		payload = castSlice[uint16](data)
	case SLVR:
		payload = castSlice[int32](data)
	case ULVR, OLVR:
		payload = castSlice[uint32](data)
	case FLVR, OFVR:
		payload = castSlice[float32](data)
	case FDVR, ODVR:
		payload = castSlice[float64](data)
	case OBVR, UNVR:
		p := castSlice[byte](data)
		if len(p)%2 == 1 {
			p = append(p, vr.pad)
		}
		return Value{&storage{
			refs:      1,
			vr:        vr,
			vl:        uint32(len(p)),
			numValues: uint32(len(data)),
			payload:   p,
		}}
	default:
		return Value{}
	}

	return Value{&storage{
		refs:      1,
		vr:        vr,
		vl:        uint32(len(data)) * vr.width,
		numValues: uint32(len(data)),
		payload:   payload,
	}}
}

func newFromTags(vr *VR, tags []DataElementTag) Value {
	if vr.kind != tagVR {
		return Value{}
	}
	p := make([]DataElementTag, len(tags))
	copy(p, tags)
	return Value{&storage{
		refs:      1,
		vr:        vr,
		vl:        uint32(len(p)) * vr.width,
		numValues: uint32(len(p)),
		payload:   p,
	}}
}

func newFromItems(vr *VR, items []Item) Value {
	if vr.kind != sequenceVR {
		return Value{}
	}
	p := make([]Item, len(items))
	copy(p, items)
	return Value{&storage{
		refs:      1,
		vr:        vr,
		vl:        UndefinedLength,
		numValues: uint32(len(p)),
		payload:   p,
	}}
}

// newMultiplex builds storage whose elements are themselves value handles.
// Any VR is accepted; the caller is responsible for a sane pairing. The
// storage takes its own counted reference on every nested handle, released
// when the storage is freed.
func newMultiplex(vr *VR, values []Value) Value {
	p := make([]Value, len(values))
	for i, nested := range values {
		p[i] = nested.Clone()
	}
	return Value{&storage{
		refs:      1,
		vr:        vr,
		vl:        UndefinedLength,
		numValues: uint32(len(p)),
		payload:   p,
	}}
}

// IsValid reports whether the handle references storage
func (v Value) IsValid() bool {
	return v.v != nil
}

// VR returns the value representation of the stored data, or nil for an
// invalid value
func (v Value) VR() *VR {
	if v.v == nil {
		return nil
	}
	return v.v.vr
}

// ValueLength returns the length of the stored data in bytes. It is always
// even, except when it is the UndefinedLength sentinel (sequences, multiplex
// storage and growable byte data).
func (v Value) ValueLength() uint32 {
	if v.v == nil {
		return 0
	}
	return v.v.vl
}

// NumberOfValues returns the value multiplicity. The count has different
// interpretations for different VRs:
//   - for backslash-delimited text (AE, AS, CS, DA, DS, DT, IS, LO, PN, SH,
//     TM, UC, UI) it is the number of backslash-separated values
//   - for other text (ST, LT, UT, UR) it is always 1
//   - for binary data (SS, US, SL, UL, FL, FD, OW, OL, OF, OD) it is the
//     number of binary values
//   - for OB and UN it is the number of bytes
//   - for AT it is the number of tags
//   - for SQ it is the number of items, including any delimiter items
func (v Value) NumberOfValues() uint32 {
	if v.v == nil {
		return 0
	}
	return v.v.numValues
}

// Clone returns a new counted reference sharing the same storage
func (v Value) Clone() Value {
	if v.v != nil {
		v.v.refs++
	}
	return Value{v.v}
}

// Clear releases the reference held by this handle and returns it to the
// invalid state. Storage is freed when the last reference is released.
func (v *Value) Clear() {
	if v.v != nil {
		v.v.refs--
		if v.v.refs == 0 {
			freeStorage(v.v)
		}
	}
	v.v = nil
}

// Assign releases the current reference and takes a counted reference to
// o's storage. Assigning a value that shares the same storage is a no-op.
func (v *Value) Assign(o Value) {
	if v.v == o.v {
		return
	}
	if o.v != nil {
		o.v.refs++
	}
	old := v.v
	v.v = o.v
	if old != nil {
		old.refs--
		if old.refs == 0 {
			freeStorage(old)
		}
	}
}

func freeStorage(s *storage) {
	if nested, ok := s.payload.([]Value); ok {
		for i := range nested {
			nested[i].Clear()
		}
	}
	s.payload = nil
	s.numValues = 0
	s.vl = 0
}

// Equal reports whether two values hold the same VR, length and payload.
// Two invalid values compare equal; a valid and an invalid value do not.
func (v Value) Equal(o Value) bool {
	a, b := v.v, o.v
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.vr != b.vr || a.vl != b.vl || a.numValues != b.numValues {
		return false
	}

	switch p := a.payload.(type) {
	case []byte:
		q, ok := b.payload.([]byte)
		return ok && bytes.Equal(p, q)
	case []int16:
		q, ok := b.payload.([]int16)
		return ok && equalSlice(p, q)
	case []uint16:
		q, ok := b.payload.([]uint16)
		return ok && equalSlice(p, q)
	case []int32:
		q, ok := b.payload.([]int32)
		return ok && equalSlice(p, q)
	case []uint32:
		q, ok := b.payload.([]uint32)
		return ok && equalSlice(p, q)
	case []float32:
		q, ok := b.payload.([]float32)
		return ok && equalSlice(p, q)
	case []float64:
		q, ok := b.payload.([]float64)
		return ok && equalSlice(p, q)
	case []DataElementTag:
		q, ok := b.payload.([]DataElementTag)
		return ok && equalSlice(p, q)
	case []Item:
		q, ok := b.payload.([]Item)
		if !ok || len(p) != len(q) {
			return false
		}
		for i := range p {
			if !p[i].Equal(q[i]) {
				return false
			}
		}
		return true
	case []Value:
		q, ok := b.payload.([]Value)
		if !ok || len(p) != len(q) {
			return false
		}
		for i := range p {
			if !p[i].Equal(q[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CharData returns the raw character payload for text VRs, including any
// even-length padding, or nil when the VR is not textual. The backslash
// delimiters are left in place.
func (v Value) CharData() []byte {
	if v.v == nil || !v.v.vr.isText() {
		return nil
	}
	p, _ := v.v.payload.([]byte)
	return p
}

// ByteData returns the raw byte payload for OB and UN values, or nil for
// any other VR. The slice length may exceed NumberOfValues by one trailing
// pad byte.
func (v Value) ByteData() []byte {
	if v.v == nil || v.v.vr.kind != byteDataVR {
		return nil
	}
	p, _ := v.v.payload.([]byte)
	return p
}

// Int16Data returns the native payload if the stored element type is int16
// (VR SS), else nil
func (v Value) Int16Data() []int16 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]int16)
	return p
}

// Uint16Data returns the native payload if the stored element type is
// uint16 (VRs US, OW), else nil
func (v Value) Uint16Data() []uint16 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]uint16)
	return p
}

// Int32Data returns the native payload if the stored element type is int32
// (VR SL), else nil
func (v Value) Int32Data() []int32 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]int32)
	return p
}

// Uint32Data returns the native payload if the stored element type is
// uint32 (VRs UL, OL), else nil
func (v Value) Uint32Data() []uint32 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]uint32)
	return p
}

// Float32Data returns the native payload if the stored element type is
// float32 (VRs FL, OF), else nil
func (v Value) Float32Data() []float32 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]float32)
	return p
}

// Float64Data returns the native payload if the stored element type is
// float64 (VRs FD, OD), else nil
func (v Value) Float64Data() []float64 {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]float64)
	return p
}

// TagData returns the native payload for AT values, else nil
func (v Value) TagData() []DataElementTag {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]DataElementTag)
	return p
}

// ItemData returns the sequence items for SQ values, else nil
func (v Value) ItemData() []Item {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]Item)
	return p
}

// MultiplexData returns the nested value handles of multiplex storage,
// else nil
func (v Value) MultiplexData() []Value {
	if v.v == nil {
		return nil
	}
	p, _ := v.v.payload.([]Value)
	return p
}
