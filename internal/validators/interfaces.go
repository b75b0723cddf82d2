// Package validators checks draft requests before they touch storage: key
// shape, draft type, payload size, operation batches. Services depend on
// the [Validator] interface and never see the concrete rules, so the rules
// stay testable on their own and reusable across transports.
package validators

import "context"

// Validator validates an arbitrary input value. Passing field names narrows
// the check to those fields; with none given the whole value is validated.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
