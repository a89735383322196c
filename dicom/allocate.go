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

// PayloadElement constrains the native element types backing storage can
// hold
type PayloadElement interface {
	byte | int16 | uint16 | int32 | uint32 | float32 | float64 |
		DataElementTag | Item | Value
}

func payloadWidth(p interface{}) uint32 {
	switch p.(type) {
	case []byte:
		return 1
	case []int16, []uint16:
		return 2
	case []int32, []uint32, []float32, []DataElementTag:
		return 4
	case []float64:
		return 8
	}
	return 0
}

// Allocate creates fresh storage sized for n elements of the native type T
// and returns the handle together with the writable element slice. The VR
// is recorded as given; no check is made that the (T, VR) pairing is sane,
// that is the caller's responsibility. Writing through the returned slice
// is only safe while the handle is the sole owner of the storage.
func Allocate[T PayloadElement](vr *VR, n uint32) (Value, []T) {
	if vr == nil {
		return Value{}, nil
	}

	buf := make([]T, n)
	s := &storage{refs: 1, vr: vr, numValues: n, payload: buf}

	w := payloadWidth(s.payload)
	if w == 0 {
		// item and multiplex storage has no flat byte encoding
		s.vl = UndefinedLength
		return Value{s}, buf
	}

	// round up to the two-byte alignment of the encoding
	s.vl = (n*w + 1) &^ 1
	if uint32(len(buf))*w < s.vl {
		// keep len(payload) equal to the value length; the zero pad byte
		// sits past the writable range
		p := make([]T, n+1)
		s.payload = p
		buf = p[:n]
	}

	return Value{s}, buf
}

// ReallocateBytes grows the byte payload of an OB or UN value to n bytes,
// preserving existing content. It is the path for incrementally built
// encapsulated data: on return the multiplicity is n and the value length
// is the UndefinedLength sentinel, signaling that the final length is not
// yet known. Returns nil when the value does not hold byte data.
func (v *Value) ReallocateBytes(n uint32) []byte {
	s := v.v
	if s == nil || s.vr.kind != byteDataVR {
		return nil
	}
	p, ok := s.payload.([]byte)
	if !ok {
		return nil
	}

	if uint64(n) <= uint64(cap(p)) {
		p = p[:n]
	} else {
		c := 2 * cap(p)
		if uint64(c) < uint64(n) {
			c = int(n)
		}
		q := make([]byte, n, c)
		copy(q, p)
		p = q
	}

	s.payload = p
	s.numValues = n
	s.vl = UndefinedLength
	return p
}
