package database

import (
	"fmt"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

// IDDecodeError is returned when a stored identifier is not a decimal uint64.
type IDDecodeError struct {
	Value string
	Err   error
}

func (e *IDDecodeError) Error() string {
	return fmt.Sprintf("invalid stored identifier %q: %v", e.Value, e.Err)
}

func (e *IDDecodeError) Unwrap() error {
	return e.Err
}

// EncodeID stores identifiers as decimal text so the full uint64 range survives
// backends whose integers are signed 64 bit.
func EncodeID(id snowflake.ID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func DecodeID(value string) (snowflake.ID, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &IDDecodeError{Value: value, Err: err}
	}
	return snowflake.ID(id), nil
}
