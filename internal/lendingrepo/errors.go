package lendingrepo

import "errors"

var errReadOnly = errors.New("lendingrepo: write inside a read-only view")
