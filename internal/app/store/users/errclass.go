// internal/app/store/users/errclass.go
package userstore

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// IsUnavailable reports whether err looks like a store-unavailable
// condition (server selection, network, timeout) rather than a data error.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var sse topology.ServerSelectionError
	if errors.As(err, &sse) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "server selection")
}

// IsPermissionDenied reports whether the server rejected the operation for
// lack of privileges (Mongo code 13, Unauthorized).
func IsPermissionDenied(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 13 {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 13 {
				return true
			}
		}
	}
	return false
}
