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
)

// vrKind groups VRs that share storage and multiplicity semantics
type vrKind int

const (
	// textVR is for backslash-delimited text with space padding
	textVR vrKind = iota

	// longTextVR is for free-form text whose multiplicity is always 1
	longTextVR

	// numberBinaryVR is for fixed-width binary numbers
	numberBinaryVR

	// byteDataVR is for opaque byte payloads (OB, UN) where every byte
	// counts as one value
	byteDataVR

	// uniqueIdentifierVR is for VR: UI. Delimited like textVR but with
	// null padding
	uniqueIdentifierVR

	// tagVR is for attribute tags (VR: AT)
	tagVR

	// sequenceVR is for VR: SQ
	sequenceVR
)

// UndefinedLength as specified
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xffffffff

// VR models the DICOM Value Representations (VR)
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type VR struct {
	// Name represents the 2-character VR Code
	Name string

	kind vrKind

	// width is the native element width in bytes. Text and sequence VRs
	// have width 1 so that VL arithmetic stays uniform.
	width uint32

	// pad is the byte used to extend odd-length payloads to even length
	pad byte

	// long is true for VRs encoded with a 32-bit length field in the
	// explicit syntaxes (OB, OD, OF, OL, OW, SQ, UC, UR, UT, UN)
	long bool
}

func (vr *VR) String() string {
	if vr == nil {
		return "??"
	}
	return vr.Name
}

// isText is true for all VR kinds stored as character data
func (vr *VR) isText() bool {
	return vr.kind == textVR || vr.kind == longTextVR || vr.kind == uniqueIdentifierVR
}

// isDelimited is true for text VRs whose multiplicity is the number of
// backslash-separated substrings
func (vr *VR) isDelimited() bool {
	return vr.kind == textVR || vr.kind == uniqueIdentifierVR
}

var vrLookupMap = map[string]*VR{}

func newVR(text string, kind vrKind, width uint32, pad byte, long bool) *VR {
	vr := &VR{text, kind, width, pad, long}
	vrLookupMap[vr.Name] = vr

	return vr
}

func lookupVRByName(name string) (*VR, error) {
	r, ok := vrLookupMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown vr name: %v", name)
	}
	return r, nil
}

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var (
	// backslash-delimited textual VRs
	AEVR = newVR("AE", textVR, 1, ' ', false)
	ASVR = newVR("AS", textVR, 1, ' ', false)
	CSVR = newVR("CS", textVR, 1, ' ', false)
	LOVR = newVR("LO", textVR, 1, ' ', false)
	SHVR = newVR("SH", textVR, 1, ' ', false)

	// person name
	PNVR = newVR("PN", textVR, 1, ' ', false)

	// dates/time VRs
	DAVR = newVR("DA", textVR, 1, ' ', false)
	TMVR = newVR("TM", textVR, 1, ' ', false)
	DTVR = newVR("DT", textVR, 1, ' ', false)

	// textual numbers
	ISVR = newVR("IS", textVR, 1, ' ', false)
	DSVR = newVR("DS", textVR, 1, ' ', false)

	// unlimited characters, delimited despite the 32-bit length
	UCVR = newVR("UC", textVR, 1, ' ', true)

	// unique identifier, null padded
	UIVR = newVR("UI", uniqueIdentifierVR, 1, 0x00, false)

	// free-form text, always a single value
	STVR = newVR("ST", longTextVR, 1, ' ', false)
	LTVR = newVR("LT", longTextVR, 1, ' ', false)
	UTVR = newVR("UT", longTextVR, 1, ' ', true)
	URVR = newVR("UR", longTextVR, 1, ' ', true)

	// binary numbers
	SSVR = newVR("SS", numberBinaryVR, 2, 0x00, false)
	USVR = newVR("US", numberBinaryVR, 2, 0x00, false)
	SLVR = newVR("SL", numberBinaryVR, 4, 0x00, false)
	ULVR = newVR("UL", numberBinaryVR, 4, 0x00, false)
	FLVR = newVR("FL", numberBinaryVR, 4, 0x00, false)
	FDVR = newVR("FD", numberBinaryVR, 8, 0x00, false)

	// binary number arrays
	OWVR = newVR("OW", numberBinaryVR, 2, 0x00, true)
	OLVR = newVR("OL", numberBinaryVR, 4, 0x00, true)
	OFVR = newVR("OF", numberBinaryVR, 4, 0x00, true)
	ODVR = newVR("OD", numberBinaryVR, 8, 0x00, true)

	// opaque bytes
	OBVR = newVR("OB", byteDataVR, 1, 0x00, true)
	UNVR = newVR("UN", byteDataVR, 1, 0x00, true)

	// attribute tag
	ATVR = newVR("AT", tagVR, 4, 0x00, false)

	// sequence
	SQVR = newVR("SQ", sequenceVR, 1, 0x00, true)
)
