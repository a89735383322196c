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
	"strings"
	"testing"
)

func TestNewUID(t *testing.T) {
	uid := NewUID()
	if !strings.HasPrefix(uid, "2.25.") {
		t.Fatalf("got %v, want a 2.25. prefixed UID", uid)
	}
	if len(uid) > 64 {
		t.Fatalf("uid %v exceeds the 64 character limit", uid)
	}
	for _, c := range uid[5:] {
		if c < '0' || c > '9' {
			t.Fatalf("uid %v contains a non-decimal suffix character", uid)
		}
	}
}

func TestNewUID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		uid := NewUID()
		if seen[uid] {
			t.Fatalf("uid %v generated twice", uid)
		}
		seen[uid] = true
	}
}

func TestNewUIDValue(t *testing.T) {
	v := NewUIDValue()
	if v.VR() != UIVR {
		t.Fatalf("got %v, want %v", v.VR(), UIVR)
	}
	if v.NumberOfValues() != 1 {
		t.Fatalf("got %v values, want 1", v.NumberOfValues())
	}
	if v.ValueLength()%2 != 0 {
		t.Fatalf("value length %v is odd", v.ValueLength())
	}
	if got := v.GetString(0); !strings.HasPrefix(got, "2.25.") {
		t.Fatalf("got %v, want a 2.25. prefixed UID", got)
	}
}
