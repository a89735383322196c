// Package dicom provides a self-describing, reference-counted container for
// DICOM attribute values, plus a minimal stream decoder that fills DataSets
// with such values.
//
// The central type is Value: a lightweight handle over shared backing storage
// that records the VR, the value length in bytes, and the value multiplicity.
// A Value can be built from typed Go data with NewValue, or allocated in place
// with Allocate, and read back in any supported output type with the Get and
// As accessors. Conversions follow the DICOM multiplicity and numeric-string
// conventions for the stored VR; conversions the VR does not permit degrade to
// zero values or empty strings so that bulk extraction over malformed data
// never aborts.
//
// Parse decodes a DICOM byte stream into a DataSet of Values. It understands
// the implicit and explicit little endian syntaxes, explicit big endian,
// nested sequences of items, and undefined-length encapsulated data.
package dicom
