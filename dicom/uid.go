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
	"math/big"

	"github.com/google/uuid"
)

// NewUID generates a unique identifier suitable for UI values, using the
// UUID-derived form "2.25.<decimal uuid>" defined in PS3.5 B.2. The result
// is at most 59 characters, within the 64-character UID limit.
func NewUID() string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	return "2.25." + n.String()
}

// NewUIDValue generates a fresh single-valued UI value
func NewUIDValue() Value {
	return NewValue(UIVR, NewUID())
}
