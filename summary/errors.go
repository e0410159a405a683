package summary

import "errors"

var ErrPartyNotFound = errors.New("party not found")
