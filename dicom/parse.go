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
	"errors"
	"fmt"
	"io"
)

// Parse buffers the DICOM byte stream from r into a DataSet of Values. The
// stream must begin with the 128-byte preamble and "DICM" signature; the
// file meta group determines the transfer syntax of the remaining data set.
// Meta elements are included in the returned DataSet.
func Parse(r io.Reader) (*DataSet, error) {
	dr := newDcmReader(r)

	if err := readSignature(dr); err != nil {
		return nil, err
	}

	ds := NewItem()
	syntax, err := readMetaGroup(dr, &ds)
	if err != nil {
		return nil, fmt.Errorf("reading file meta group: %v", err)
	}

	for {
		tag, value, err := readDataElement(dr, syntax)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data element: %v", err)
		}
		ds.Elements[tag] = value
	}

	return &ds, nil
}

func readSignature(dr *dcmReader) error {
	if err := dr.Skip(128); err != nil {
		return fmt.Errorf("reading DICOM preamble: %v", err)
	}

	magic, err := dr.String(4)
	if err != nil {
		return fmt.Errorf("reading DICOM signature: %v", err)
	}
	if magic != "DICM" {
		return fmt.Errorf("wrong DICOM signature: got %q, want %q", magic, "DICM")
	}
	return nil
}

// readMetaGroup reads the file meta elements, which are always encoded in
// explicit VR little endian, and returns the transfer syntax of the data
// set that follows
func readMetaGroup(dr *dcmReader, ds *DataSet) (transferSyntax, error) {
	tag, value, err := readDataElement(dr, explicitVRLittleEndian)
	if err != nil {
		return transferSyntax{}, err
	}
	if tag != FileMetaInformationGroupLengthTag {
		return transferSyntax{}, fmt.Errorf("expected group length element %v, got %v",
			FileMetaInformationGroupLengthTag, tag)
	}
	ds.Elements[tag] = value

	metaReader := dr.Limit(int64(value.AsUint32()))
	for {
		tag, value, err := readDataElement(metaReader, explicitVRLittleEndian)
		if err == io.EOF {
			break
		}
		if err != nil {
			return transferSyntax{}, err
		}
		ds.Elements[tag] = value
	}

	uid := ds.FindString(TransferSyntaxUIDTag)
	if uid == "" {
		return transferSyntax{}, errors.New("transfer syntax element is missing from the meta group")
	}
	return lookupTransferSyntax(uid), nil
}

func readDataElement(dr *dcmReader, syntax transferSyntax) (DataElementTag, Value, error) {
	tag, err := dr.Tag(syntax.order)
	if err == io.EOF {
		return 0, Value{}, io.EOF
	}
	if err != nil {
		return 0, Value{}, fmt.Errorf("getting tag: %v", err)
	}

	if tag == ItemDelimitationItemTag {
		// terminates the nested data set of an undefined-length item; this
		// never runs for the top level data set
		length, err := dr.UInt32(syntax.order)
		if err != nil {
			return 0, Value{}, fmt.Errorf("reading 32 bit length of item delimitation: %v", err)
		}
		if length != 0 {
			return 0, Value{}, fmt.Errorf("wrong length for item delimiter: got %v, want 0", length)
		}
		return 0, Value{}, io.EOF
	}

	vr, err := syntax.readVR(dr, tag)
	if err != nil {
		return 0, Value{}, fmt.Errorf("getting vr: %v", err)
	}

	length, err := syntax.readValueLength(dr, vr)
	if err != nil {
		return 0, Value{}, fmt.Errorf("getting length: %v", err)
	}

	value, err := readValue(dr, tag, vr, length, syntax)
	if err != nil {
		return 0, Value{}, fmt.Errorf("parsing value of %v: %v", tag, err)
	}

	return tag, value, nil
}

func readValue(dr *dcmReader, tag DataElementTag, vr *VR, length uint32, syntax transferSyntax) (Value, error) {
	switch vr.kind {
	case sequenceVR:
		items, err := readSequenceItems(dr, length, syntax)
		if err != nil {
			return Value{}, err
		}
		return NewValue(vr, items), nil
	case byteDataVR:
		if length == UndefinedLength {
			return readEncapsulated(dr, vr, syntax)
		}
		b, err := dr.Bytes(int64(length))
		if err != nil {
			return Value{}, err
		}
		return NewValue(vr, b), nil
	case numberBinaryVR:
		if length == UndefinedLength {
			if tag == PixelDataTag {
				// (7FE0,0010) with undefined length holds pixel data in
				// encapsulated (compressed) format
				return readEncapsulated(dr, vr, syntax)
			}
			return Value{}, errors.New("undefined length in non-pixel binary data not supported")
		}
		return readNumberBinary(dr, vr, length, syntax.order)
	case tagVR:
		tags := make([]DataElementTag, length/4)
		for i := range tags {
			t, err := dr.Tag(syntax.order)
			if err != nil {
				return Value{}, err
			}
			tags[i] = t
		}
		return NewValue(vr, tags), nil
	default:
		// all text kinds: ingest the raw, still padded characters
		b, err := dr.Bytes(int64(length))
		if err != nil {
			return Value{}, err
		}
		return NewValue(vr, b), nil
	}
}

func readNumberBinary(dr *dcmReader, vr *VR, length uint32, order binary.ByteOrder) (Value, error) {
	var data interface{}

	switch vr {
	case SSVR:
		data = make([]int16, length/2)
	case USVR, OWVR:
		data = make([]uint16, length/2)
	case SLVR:
		data = make([]int32, length/4)
	case ULVR, OLVR:
		data = make([]uint32, length/4)
	case FLVR, OFVR:
		data = make([]float32, length/4)
	case FDVR, ODVR:
		data = make([]float64, length/8)
	default:
		return Value{}, fmt.Errorf("unknown binary vr: %v", vr)
	}

	if err := binary.Read(dr, order, data); err != nil {
		return Value{}, fmt.Errorf("reading binary values: %v", err)
	}
	return NewValue(vr, data), nil
}

// readSequenceItems buffers a sequence of items, handling both explicit
// lengths and undefined lengths with delimiter items
func readSequenceItems(dr *dcmReader, length uint32, syntax transferSyntax) ([]Item, error) {
	undefined := length == UndefinedLength
	if !undefined {
		dr = dr.Limit(int64(length))
	}

	items := []Item{}
	for {
		tag, err := dr.Tag(syntax.order)
		if err == io.EOF && !undefined {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading item tag: %v", err)
		}
		if tag == SequenceDelimitationItemTag {
			if err := readDelimiterLength(dr, syntax); err != nil {
				return nil, err
			}
			break
		}
		if tag != ItemTag {
			return nil, fmt.Errorf("invalid item tag in sequence: got %v, want %v", tag, ItemTag)
		}

		itemLength, err := dr.UInt32(syntax.order)
		if err != nil {
			return nil, fmt.Errorf("reading item length: %v", err)
		}

		idr := dr
		if itemLength != UndefinedLength {
			idr = dr.Limit(int64(itemLength))
		}

		item := NewItem()
		for {
			t, v, err := readDataElement(idr, syntax)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			item.Elements[t] = v
		}
		items = append(items, item)
	}

	return items, nil
}

// readEncapsulated accumulates undefined-length byte data through the
// growable reallocation path. All fragments are concatenated, including
// the leading basic offset table item when one is present.
func readEncapsulated(dr *dcmReader, vr *VR, syntax transferSyntax) (Value, error) {
	if vr.kind != byteDataVR {
		// encapsulated pixel data declared as OW lands in byte storage
		vr = OBVR
	}
	v, _ := Allocate[byte](vr, 0)

	total := uint32(0)
	for {
		tag, err := dr.Tag(syntax.order)
		if err != nil {
			return Value{}, fmt.Errorf("reading fragment tag: %v", err)
		}
		if tag == SequenceDelimitationItemTag {
			if err := readDelimiterLength(dr, syntax); err != nil {
				return Value{}, err
			}
			return v, nil
		}
		if tag != ItemTag {
			return Value{}, fmt.Errorf("invalid fragment tag: got %v, want %v", tag, ItemTag)
		}

		fragLen, err := dr.UInt32(syntax.order)
		if err != nil {
			return Value{}, fmt.Errorf("reading fragment length: %v", err)
		}

		buf := v.ReallocateBytes(total + fragLen)
		if _, err := io.ReadFull(dr, buf[total:total+fragLen]); err != nil {
			return Value{}, fmt.Errorf("reading fragment data: %v", err)
		}
		total += fragLen
	}
}

func readDelimiterLength(dr *dcmReader, syntax transferSyntax) error {
	length, err := dr.UInt32(syntax.order)
	if err != nil {
		return fmt.Errorf("reading 32 bit length of sequence delimitation item: %v", err)
	}
	if length != 0 {
		return fmt.Errorf("expected 0 length on sequence delimiter, got %v", length)
	}
	return nil
}
