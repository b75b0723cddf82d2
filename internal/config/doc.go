// Package config assembles runtime configuration for both halves of the
// system: the draft service and the register-side sync engine.
//
// Configuration is layered from three sources — environment variables,
// command-line flags, then a JSON file. Merging fills only fields still
// unset, so an earlier source always wins over a later one: env beats
// flags, flags beat the file. The JSON path itself may arrive via the
// CONFIG variable or the -c/-config flags.
//
// [GetStructuredConfig] builds the draft service configuration and
// [GetClientConfig] the register's; both validate the merged result
// before returning it.
package config
