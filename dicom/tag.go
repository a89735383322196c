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

import "fmt"

// DataElementTag is a unique identifier for a Data Element composed of an
// ordered pair of numbers called the group number and the element number as
// specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// The least significant 16 bits is the element number. The most significant
// 16 bits is the group number.
type DataElementTag uint32

// NewDataElementTag builds a tag from its group and element numbers
func NewDataElementTag(group, element uint16) DataElementTag {
	return DataElementTag(uint32(group)<<16 | uint32(element))
}

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetadataElement is true if and only if the Data Element is a file meta
// element
func (t DataElementTag) IsMetadataElement() bool {
	return t.GroupNumber() == uint16(0x0002)
}

// IsPrivate is true if the tag belongs to an odd-numbered group
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// commonly referenced tags
const (
	FileMetaInformationGroupLengthTag = DataElementTag(0x00020000)
	MediaStorageSOPClassUIDTag        = DataElementTag(0x00020002)
	MediaStorageSOPInstanceUIDTag     = DataElementTag(0x00020003)
	TransferSyntaxUIDTag              = DataElementTag(0x00020010)
	SpecificCharacterSetTag           = DataElementTag(0x00080005)
	SOPClassUIDTag                    = DataElementTag(0x00080016)
	SOPInstanceUIDTag                 = DataElementTag(0x00080018)
	StudyDateTag                      = DataElementTag(0x00080020)
	ModalityTag                       = DataElementTag(0x00080060)
	ReferencedImageSequenceTag        = DataElementTag(0x00081140)
	PatientNameTag                    = DataElementTag(0x00100010)
	PatientIDTag                      = DataElementTag(0x00100020)
	StudyInstanceUIDTag               = DataElementTag(0x0020000D)
	SeriesInstanceUIDTag              = DataElementTag(0x0020000E)
	InstanceNumberTag                 = DataElementTag(0x00200013)
	SamplesPerPixelTag                = DataElementTag(0x00280002)
	RowsTag                           = DataElementTag(0x00280010)
	ColumnsTag                        = DataElementTag(0x00280011)
	PixelDataTag                      = DataElementTag(0x7FE00010)
	ItemTag                           = DataElementTag(0xFFFEE000)
	ItemDelimitationItemTag           = DataElementTag(0xFFFEE00D)
	SequenceDelimitationItemTag       = DataElementTag(0xFFFEE0DD)
)

// dictionary covers the tags the implicit VR syntax can resolve without a
// full data dictionary. Anything else decodes as UN, which the standard
// permits for unrecognized implicit elements.
var dictionary = map[DataElementTag]*VR{
	FileMetaInformationGroupLengthTag: ULVR,
	MediaStorageSOPClassUIDTag:        UIVR,
	MediaStorageSOPInstanceUIDTag:     UIVR,
	TransferSyntaxUIDTag:              UIVR,
	SpecificCharacterSetTag:           CSVR,
	SOPClassUIDTag:                    UIVR,
	SOPInstanceUIDTag:                 UIVR,
	StudyDateTag:                      DAVR,
	ModalityTag:                       CSVR,
	ReferencedImageSequenceTag:        SQVR,
	PatientNameTag:                    PNVR,
	PatientIDTag:                      LOVR,
	StudyInstanceUIDTag:               UIVR,
	SeriesInstanceUIDTag:              UIVR,
	InstanceNumberTag:                 ISVR,
	SamplesPerPixelTag:                USVR,
	RowsTag:                           USVR,
	ColumnsTag:                        USVR,
	PixelDataTag:                      OWVR,
}

// DictionaryVR returns the dictionary VR for the tag, or UNVR when the tag
// is not covered
func (t DataElementTag) DictionaryVR() *VR {
	if t.ElementNumber() == 0x0000 {
		// group length elements are always UL
		return ULVR
	}
	if vr, ok := dictionary[t]; ok {
		return vr
	}
	return UNVR
}
