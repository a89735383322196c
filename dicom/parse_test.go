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
	"encoding/binary"
	"io"
	"reflect"
	"testing"
)

func dcmReaderFromBytes(data []byte) *dcmReader {
	return newDcmReader(bytes.NewBuffer(data))
}

func appendUint16(b []byte, order binary.ByteOrder, vs ...uint16) []byte {
	var scratch [2]byte
	for _, v := range vs {
		order.PutUint16(scratch[:], v)
		b = append(b, scratch[:]...)
	}
	return b
}

func appendUint32(b []byte, order binary.ByteOrder, vs ...uint32) []byte {
	var scratch [4]byte
	for _, v := range vs {
		order.PutUint32(scratch[:], v)
		b = append(b, scratch[:]...)
	}
	return b
}

func appendTag(b []byte, order binary.ByteOrder, tag DataElementTag) []byte {
	return appendUint16(b, order, tag.GroupNumber(), tag.ElementNumber())
}

// elementHeader encodes an explicit VR element header per the byte structure
// in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func elementHeader(order binary.ByteOrder, tag DataElementTag, vr *VR, length uint32) []byte {
	b := appendTag(nil, order, tag)
	b = append(b, vr.Name...)
	if vr.long {
		b = appendUint16(b, order, 0)
		return appendUint32(b, order, length)
	}
	return appendUint16(b, order, uint16(length))
}

func explicitElement(order binary.ByteOrder, tag DataElementTag, vr *VR, payload []byte) []byte {
	return append(elementHeader(order, tag, vr, uint32(len(payload))), payload...)
}

func implicitElement(order binary.ByteOrder, tag DataElementTag, payload []byte) []byte {
	b := appendTag(nil, order, tag)
	b = appendUint32(b, order, uint32(len(payload)))
	return append(b, payload...)
}

func sequenceItem(order binary.ByteOrder, payload []byte) []byte {
	b := appendTag(nil, order, ItemTag)
	b = appendUint32(b, order, uint32(len(payload)))
	return append(b, payload...)
}

func delimiter(order binary.ByteOrder, tag DataElementTag) []byte {
	return appendUint32(appendTag(nil, order, tag), order, 0)
}

// dicomFile builds a full stream: preamble, signature, a minimal meta group
// declaring the transfer syntax, and the given data set bytes
func dicomFile(syntaxUID string, body []byte) []byte {
	file := make([]byte, 128)
	file = append(file, "DICM"...)

	uid := []byte(syntaxUID)
	if len(uid)%2 == 1 {
		uid = append(uid, 0x00)
	}
	meta := explicitElement(binary.LittleEndian, TransferSyntaxUIDTag, UIVR, uid)
	groupLength := appendUint32(nil, binary.LittleEndian, uint32(len(meta)))
	file = append(file, explicitElement(binary.LittleEndian,
		FileMetaInformationGroupLengthTag, ULVR, groupLength)...)
	file = append(file, meta...)

	return append(file, body...)
}

func TestReadDataElement(t *testing.T) {
	tests := []struct {
		name    string
		bytes   []byte
		syntax  transferSyntax
		wantTag DataElementTag
		want    Value
		err     error
	}{
		{
			"unsigned long ExplicitVRLittleEndian",
			[]byte{0x02, 0x00, 0x00, 0x00, 'U', 'L', 0x04, 0x00, 0xCA, 0x00, 0x00, 0x00},
			explicitVRLittleEndian,
			FileMetaInformationGroupLengthTag,
			NewValue(ULVR, []uint32{202}),
			nil,
		},
		{
			"Item Delimitation Item",
			[]byte{0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00},
			explicitVRLittleEndian,
			0,
			Value{},
			io.EOF,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tag, value, err := readDataElement(dcmReaderFromBytes(tc.bytes), tc.syntax)
			if err != tc.err {
				t.Fatalf("readDataElement(_, _) => (%v, %v, %v), want err %v",
					tag, value, err, tc.err)
			}
			if tag != tc.wantTag {
				t.Fatalf("got tag %v, want %v", tag, tc.wantTag)
			}
			if !value.Equal(tc.want) {
				t.Fatalf("got %v, want %v", value, tc.want)
			}
		})
	}
}

func TestParse_ExplicitVRLittleEndian(t *testing.T) {
	order := binary.LittleEndian
	var body []byte
	body = append(body, explicitElement(order, ModalityTag, CSVR, []byte("MR"))...)
	body = append(body, explicitElement(order, PatientNameTag, PNVR, []byte("Doe^John"))...)
	body = append(body, explicitElement(order, RowsTag, USVR, appendUint16(nil, order, 512))...)
	body = append(body, explicitElement(order, PixelDataTag, OWVR,
		appendUint16(nil, order, 0x1111, 0x2222))...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	if got := ds.FindString(TransferSyntaxUIDTag); got != ExplicitVRLittleEndianUID {
		t.Fatalf("got transfer syntax %q, want %q", got, ExplicitVRLittleEndianUID)
	}
	if got := ds.FindString(ModalityTag); got != "MR" {
		t.Fatalf("got %q, want %q", got, "MR")
	}
	if got := ds.FindString(PatientNameTag); got != "Doe^John" {
		t.Fatalf("got %q, want %q", got, "Doe^John")
	}
	if got := ds.Get(RowsTag).AsUint16(); got != 512 {
		t.Fatalf("got %v, want %v", got, 512)
	}

	pixels := ds.Get(PixelDataTag)
	if pixels.VR() != OWVR {
		t.Fatalf("got %v, want %v", pixels.VR(), OWVR)
	}
	if got, want := pixels.Uint16Data(), []uint16{0x1111, 0x2222}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_ImplicitVRLittleEndian(t *testing.T) {
	order := binary.LittleEndian
	unknownTag := DataElementTag(0x00090001)

	var body []byte
	body = append(body, implicitElement(order, ModalityTag, []byte("CT"))...)
	body = append(body, implicitElement(order, unknownTag, []byte{0x01, 0x02})...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ImplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	modality := ds.Get(ModalityTag)
	if modality.VR() != CSVR {
		t.Fatalf("got %v, want %v", modality.VR(), CSVR)
	}
	if got := modality.GetString(0); got != "CT" {
		t.Fatalf("got %q, want %q", got, "CT")
	}

	unknown := ds.Get(unknownTag)
	if unknown.VR() != UNVR {
		t.Fatalf("got %v, want %v", unknown.VR(), UNVR)
	}
	if got, want := unknown.ByteData(), []byte{0x01, 0x02}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_ExplicitVRBigEndian(t *testing.T) {
	order := binary.BigEndian
	body := explicitElement(order, RowsTag, USVR, appendUint16(nil, order, 0x0101))

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRBigEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}
	if got := ds.Get(RowsTag).AsUint16(); got != 0x0101 {
		t.Fatalf("got %v, want %v", got, 0x0101)
	}
}

func TestParse_SequenceDefinedLength(t *testing.T) {
	order := binary.LittleEndian
	inner := explicitElement(order, SOPInstanceUIDTag, UIVR, []byte("1.2.840.10008.5.1.4.1.1.4\x00"))
	item := sequenceItem(order, inner)
	body := append(elementHeader(order, ReferencedImageSequenceTag, SQVR, uint32(len(item))), item...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	seq := ds.Get(ReferencedImageSequenceTag)
	items := seq.ItemData()
	if len(items) != 1 {
		t.Fatalf("got %v items, want 1", len(items))
	}
	if got := items[0].FindString(SOPInstanceUIDTag); got != "1.2.840.10008.5.1.4.1.1.4" {
		t.Fatalf("got %q, want %q", got, "1.2.840.10008.5.1.4.1.1.4")
	}
	if seq.ValueLength() != UndefinedLength {
		t.Fatalf("got %v, want the undefined length sentinel", seq.ValueLength())
	}
}

func TestParse_SequenceUndefinedLength(t *testing.T) {
	order := binary.LittleEndian

	var item []byte
	item = appendTag(item, order, ItemTag)
	item = appendUint32(item, order, UndefinedLength)
	item = append(item, explicitElement(order, ModalityTag, CSVR, []byte("US"))...)
	item = append(item, delimiter(order, ItemDelimitationItemTag)...)

	body := elementHeader(order, ReferencedImageSequenceTag, SQVR, UndefinedLength)
	body = append(body, item...)
	body = append(body, delimiter(order, SequenceDelimitationItemTag)...)
	body = append(body, explicitElement(order, PatientIDTag, LOVR, []byte("1234"))...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	items := ds.Get(ReferencedImageSequenceTag).ItemData()
	if len(items) != 1 {
		t.Fatalf("got %v items, want 1", len(items))
	}
	if got := items[0].FindString(ModalityTag); got != "US" {
		t.Fatalf("got %q, want %q", got, "US")
	}
	if got := ds.FindString(PatientIDTag); got != "1234" {
		t.Fatalf("got %q, want %q", got, "1234")
	}
}

func TestParse_EncapsulatedPixelData(t *testing.T) {
	order := binary.LittleEndian

	body := elementHeader(order, PixelDataTag, OBVR, UndefinedLength)
	body = append(body, sequenceItem(order, nil)...) // empty basic offset table
	body = append(body, sequenceItem(order, []byte{0xDE, 0xAD, 0xBE, 0xEF})...)
	body = append(body, delimiter(order, SequenceDelimitationItemTag)...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	pixels := ds.Get(PixelDataTag)
	if pixels.VR() != OBVR {
		t.Fatalf("got %v, want %v", pixels.VR(), OBVR)
	}
	if pixels.ValueLength() != UndefinedLength {
		t.Fatalf("got %v, want the undefined length sentinel", pixels.ValueLength())
	}
	if pixels.NumberOfValues() != 4 {
		t.Fatalf("got %v values, want 4", pixels.NumberOfValues())
	}
	if got, want := pixels.ByteData(), []byte{0xDE, 0xAD, 0xBE, 0xEF}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_EncapsulatedOWCoercedToByteStorage(t *testing.T) {
	order := binary.LittleEndian

	body := elementHeader(order, PixelDataTag, OWVR, UndefinedLength)
	body = append(body, sequenceItem(order, []byte{0x01, 0x02})...)
	body = append(body, delimiter(order, SequenceDelimitationItemTag)...)

	ds, err := Parse(bytes.NewBuffer(dicomFile(ExplicitVRLittleEndianUID, body)))
	if err != nil {
		t.Fatalf("Parse(_) => %v", err)
	}

	pixels := ds.Get(PixelDataTag)
	if pixels.VR() != OBVR {
		t.Fatalf("got %v, want %v", pixels.VR(), OBVR)
	}
	if got, want := pixels.ByteData(), []byte{0x01, 0x02}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_WrongSignature(t *testing.T) {
	file := make([]byte, 128)
	file = append(file, "NOPE"...)
	if _, err := Parse(bytes.NewBuffer(file)); err == nil {
		t.Fatalf("expected an error from a missing DICM signature")
	}
}

func TestParse_MissingTransferSyntax(t *testing.T) {
	file := make([]byte, 128)
	file = append(file, "DICM"...)
	file = append(file, explicitElement(binary.LittleEndian,
		FileMetaInformationGroupLengthTag, ULVR,
		appendUint32(nil, binary.LittleEndian, 0))...)
	if _, err := Parse(bytes.NewBuffer(file)); err == nil {
		t.Fatalf("expected an error when the meta group lacks a transfer syntax")
	}
}
