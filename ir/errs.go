package ir

import "errors"

var ErrInvalidNodeKind = errors.New("invalid node kind")
