package args

import "errors"

var (
	ErrNoArgs           = errors.New("args: no parameters given")
	ErrVersionWithFiles = errors.New("args: --version cannot be combined with files")
)
