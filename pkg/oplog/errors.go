package oplog

import "errors"

var (
	ErrAlreadyLogged = errors.New("transform id already logged")
)
