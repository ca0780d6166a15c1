package notation

import "errors"

// ErrInvalidNotation is wrapped into the error ParseSequence returns for a
// token that isn't a recognized face letter plus turn suffix (ParseTwist
// reports the same case with a false result).
var ErrInvalidNotation = errors.New("invalid move notation")
