package template

import "errors"

var (
	ErrUnknownTemplate = errors.New("template: unknown template id")
	ErrMissingSource   = errors.New("template: missing source id")
	ErrMalformedBuffer = errors.New("template: malformed buffer")
)
