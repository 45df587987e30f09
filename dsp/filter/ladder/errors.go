package ladder

import "errors"

var (
	errTPTVariant  = errors.New("ladder: NewTPT does not build the moog variant")
	errMoogVariant = errors.New("ladder: NewMoog only builds the moog variant")
)
