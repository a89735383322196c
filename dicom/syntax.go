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
)

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
)

type transferSyntax struct {
	order    binary.ByteOrder
	implicit bool
}

var (
	implicitVRLittleEndian = transferSyntax{binary.LittleEndian, true}
	explicitVRLittleEndian = transferSyntax{binary.LittleEndian, false}
	explicitVRBigEndian    = transferSyntax{binary.BigEndian, false}
)

func lookupTransferSyntax(uid string) transferSyntax {
	switch uid {
	case ImplicitVRLittleEndianUID:
		return implicitVRLittleEndian
	case ExplicitVRBigEndianUID:
		return explicitVRBigEndian
	}

	// any other syntax, including the encapsulated ones, encodes its data
	// set as explicit VR little endian according to PS3.5 A.4
	return explicitVRLittleEndian
}

func (s transferSyntax) readVR(dr *dcmReader, tag DataElementTag) (*VR, error) {
	if s.implicit {
		return tag.DictionaryVR(), nil
	}

	name, err := dr.String(2)
	if err != nil {
		return nil, fmt.Errorf("reading vr: %v", err)
	}
	return lookupVRByName(name)
}

func (s transferSyntax) readValueLength(dr *dcmReader, vr *VR) (uint32, error) {
	if s.implicit {
		return dr.UInt32(s.order)
	}

	// For explicit VR, lengths are stored in a 32-bit field or a 16-bit
	// field depending on the VR, as defined at
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
	if vr.long {
		if _, err := dr.UInt16(s.order); err != nil {
			return 0, fmt.Errorf("reading reserved field: %v", err)
		}
		return dr.UInt32(s.order)
	}

	length, err := dr.UInt16(s.order)
	return uint32(length), err
}
