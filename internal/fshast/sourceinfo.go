package fshast

import "github.com/dekarrin/fshimport/internal/ierrors"

// SourceInfo is carried by every produced entity and rule: every
// entity must trace back to the file and location it was declared at.
type SourceInfo struct {
	File     string
	Location ierrors.Location
}
