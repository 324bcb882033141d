// Package local defines the local persistent key-value storage used for
// demo mode and for deployments without a remote store.
package local

import "context"

// Storage is a string key-value store on the local machine
type Storage interface {
	// ReadString returns the stored value and whether the key was present
	ReadString(ctx context.Context, key string) (string, bool, error)
	WriteString(ctx context.Context, key, value string) error
}
