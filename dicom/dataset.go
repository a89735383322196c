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

import "sort"

// Item is a collection of data elements keyed by tag. It is the native
// element type of sequence (SQ) storage.
type Item struct {
	Elements map[DataElementTag]Value
}

// DataSet models a DICOM Data Set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
// It has the same shape as a sequence Item.
type DataSet = Item

// NewItem returns an empty item
func NewItem() Item {
	return Item{Elements: map[DataElementTag]Value{}}
}

// Get returns the value stored under the tag, or an invalid value when the
// tag is absent
func (it Item) Get(tag DataElementTag) Value {
	return it.Elements[tag]
}

// Set stores the value under the tag
func (it Item) Set(tag DataElementTag, v Value) {
	it.Elements[tag] = v
}

// FindString returns the first value under the tag converted to a string,
// or "" when the tag is absent
func (it Item) FindString(tag DataElementTag) string {
	return it.Get(tag).GetString(0)
}

// SortedTags returns the tags of the item in ascending order
func (it Item) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(it.Elements))
	for tag := range it.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Equal reports whether two items hold equal values under the same tags
func (it Item) Equal(o Item) bool {
	if len(it.Elements) != len(o.Elements) {
		return false
	}
	for tag, v := range it.Elements {
		ov, ok := o.Elements[tag]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
