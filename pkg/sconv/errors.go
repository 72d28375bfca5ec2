package sconv

import (
	"fmt"

	"github.com/joshuapare/archstr/pkg/types"
)

func unsupported(from, to string) error {
	return types.Errorf(types.ErrKindEncodingUnsupported,
		fmt.Sprintf("sconv: cannot convert from %s to %s", from, to), nil)
}

func malformed(n int, charset string) error {
	return types.Errorf(types.ErrKindMalformedInput,
		fmt.Sprintf("sconv: %d invalid %s sequence(s) replaced", n, charset), nil)
}

func unrepresentable(n int, charset string) error {
	return types.Errorf(types.ErrKindUnrepresentable,
		fmt.Sprintf("sconv: %d character(s) not representable in %s", n, charset), nil)
}
