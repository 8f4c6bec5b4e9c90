package dtype

import "errors"

var (
	// ErrUnsupportedDataType is returned when a type has no mapping in a
	// destination format.
	ErrUnsupportedDataType = errors.New("unsupported data type")

	// ErrInvalidData is returned when sample data does not satisfy a
	// structural precondition, such as a length that disagrees with a shape.
	ErrInvalidData = errors.New("invalid data")
)
