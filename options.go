package lexicon

import (
	"github.com/npillmayer/schuko"
)

// Configuration keys understood by WithConfiguration.
const (
	ConfigBackend    = "lexicon.backend"    // backend name, e.g. "hashmap"
	ConfigMerge      = "lexicon.merge"      // "accumulate" or "overwrite"
	ConfigIdentifier = "lexicon.identifier" // name used in tracing output
)

type options struct {
	kind   BackendType
	policy MergePolicy
	id     string
}

// Option configures a Store at construction time.
type Option func(*options)

// WithBackend selects the backend type for all partitions.
// Unregistered types make New fail with ErrUnresolvedBackend.
func WithBackend(kind BackendType) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithBackendName selects the backend type by name. Unknown names fall back
// to HashMap.
func WithBackendName(name string) Option {
	return func(o *options) {
		o.kind = ParseBackendType(name)
	}
}

// WithMergePolicy sets the policy for adding keys which are already present.
func WithMergePolicy(policy MergePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithIdentifier names the store. Without a name, New generates one.
func WithIdentifier(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithConfiguration reads store settings from an application configuration.
// Keys which are not set leave the current settings untouched.
func WithConfiguration(conf schuko.Configuration) Option {
	return func(o *options) {
		if conf == nil {
			return
		}
		if conf.IsSet(ConfigBackend) {
			o.kind = BackendTypeFromString(conf.GetString(ConfigBackend), o.kind)
		}
		if conf.IsSet(ConfigMerge) {
			o.policy = ParseMergePolicy(conf.GetString(ConfigMerge))
		}
		if conf.IsSet(ConfigIdentifier) {
			o.id = conf.GetString(ConfigIdentifier)
		}
	}
}
