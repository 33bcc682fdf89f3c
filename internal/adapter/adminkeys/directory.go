// Package adminkeys implements the admin-identity collaborator over a
// configured set of caller keys.
package adminkeys

import "context"

// Directory answers admin checks against a fixed key set loaded from
// configuration at startup.
type Directory struct {
	keys map[string]struct{}
}

// NewDirectory builds a directory from the configured admin keys.
func NewDirectory(keys []string) *Directory {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			m[k] = struct{}{}
		}
	}
	return &Directory{keys: m}
}

// IsAdmin reports whether the caller key is configured as an admin.
func (d *Directory) IsAdmin(_ context.Context, callerKey string) bool {
	_, ok := d.keys[callerKey]
	return ok
}
