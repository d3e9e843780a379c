// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package radix

import (
	"fmt"
	"reflect"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

// DType is the element type of an Array.
type DType uint8

const (
	DTypeInvalid DType = iota
	DTypeBool
	DTypeInt8
	DTypeInt16
	DTypeInt32
	DTypeInt64
	DTypeUint8
	DTypeUint16
	DTypeUint32
	DTypeUint64
	DTypeFloat32
	DTypeFloat64
)

var dtypeKinds = [...]keys.Kind{
	DTypeInvalid: keys.Invalid,
	DTypeBool:    keys.Bool,
	DTypeInt8:    keys.Int8,
	DTypeInt16:   keys.Int16,
	DTypeInt32:   keys.Int32,
	DTypeInt64:   keys.Int64,
	DTypeUint8:   keys.Uint8,
	DTypeUint16:  keys.Uint16,
	DTypeUint32:  keys.Uint32,
	DTypeUint64:  keys.Uint64,
	DTypeFloat32: keys.Float32,
	DTypeFloat64: keys.Float64,
}

// Short type codes, as in "i8" for int64.
var dtypeCodes = [...]string{
	DTypeInvalid: "",
	DTypeBool:    "?",
	DTypeInt8:    "i1",
	DTypeInt16:   "i2",
	DTypeInt32:   "i4",
	DTypeInt64:   "i8",
	DTypeUint8:   "u1",
	DTypeUint16:  "u2",
	DTypeUint32:  "u4",
	DTypeUint64:  "u8",
	DTypeFloat32: "f4",
	DTypeFloat64: "f8",
}

// Kind returns the key kind of d.
func (d DType) Kind() keys.Kind {
	if int(d) < len(dtypeKinds) {
		return dtypeKinds[d]
	}
	return keys.Invalid
}

// Size returns the byte size of one element.
func (d DType) Size() int { return d.Kind().Size() }

// Code returns the short type code of d, or "" for DTypeInvalid.
func (d DType) Code() string {
	if int(d) < len(dtypeCodes) {
		return dtypeCodes[d]
	}
	return ""
}

func (d DType) String() string {
	if d.Kind() == keys.Invalid {
		return "invalid"
	}
	return d.Kind().String()
}

// ParseDType accepts a type name ("int64") or a short code ("i8").
func ParseDType(s string) (DType, error) {
	for d := DTypeBool; d <= DTypeFloat64; d++ {
		if s == d.String() || s == d.Code() {
			return d, nil
		}
	}
	return DTypeInvalid, fmt.Errorf("radix: unknown dtype %q", s)
}

var reflectDTypes = map[reflect.Kind]DType{
	reflect.Bool:    DTypeBool,
	reflect.Int8:    DTypeInt8,
	reflect.Int16:   DTypeInt16,
	reflect.Int32:   DTypeInt32,
	reflect.Int64:   DTypeInt64,
	reflect.Uint8:   DTypeUint8,
	reflect.Uint16:  DTypeUint16,
	reflect.Uint32:  DTypeUint32,
	reflect.Uint64:  DTypeUint64,
	reflect.Float32: DTypeFloat32,
	reflect.Float64: DTypeFloat64,
}

// DTypeOf returns the element type of a slice. Named element types map to
// their underlying kind; anything that is not a slice of a supported type
// is DTypeInvalid.
func DTypeOf(data any) DType {
	t := reflect.TypeOf(data)
	if t == nil || t.Kind() != reflect.Slice {
		return DTypeInvalid
	}
	return reflectDTypes[t.Elem().Kind()]
}
