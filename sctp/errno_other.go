//go:build !linux

package sctp

import "errors"

func classify(err error) error {
	if errors.Is(err, ErrNotSupported) {
		return ErrNotSupported
	}
	return ErrIO
}
