package domain

import "errors"

// ErrContextNotFound is returned by context sources when no record exists
// for the requested post. The engine treats it as "render without context".
var ErrContextNotFound = errors.New("post context not found")

// ErrItemNotFound is returned by catalogs when an action ID is unknown.
var ErrItemNotFound = errors.New("action item not found")
