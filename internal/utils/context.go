// Package utils collects the small cross-cutting helpers shared by the
// server and the register: typed context keys, SHA-256 content hashing,
// JSON response writing, the resty client wrapper and JWT handling.
package utils

import (
	"context"
)

// contextKey is unexported so no other package can collide with our context
// values, even when it stores plain strings under similar names.
type contextKey string

// String implements fmt.Stringer for log output.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey keys the authenticated user's id in a request context. The
// auth middleware stores it after token verification; handlers read it back
// through GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// DeviceIDCtxKey keys the register's device id, taken from the X-Device-ID
// request header by the auth middleware so handlers can scope draft queries
// per device.
var DeviceIDCtxKey = contextKey("deviceID")

// GetUserIDFromContext returns the authenticated user id. ok is false when
// the value is absent or mistyped; both mean the request never passed auth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetDeviceIDFromContext returns the register's device id. The ok flag
// mirrors GetUserIDFromContext semantics.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}
