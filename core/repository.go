package core

import "context"

// Include requests eager loading of a named relation, expressed in domain
// vocabulary. Storage implementations translate the relation name the same
// way they translate predicate fields.
type Include struct {
	Relation string
}

// QueryConfig collects the per-query options of Get and GetAll.
type QueryConfig struct {
	// Tracking registers the fetched record with the active unit of work so a
	// later Update or Delete can reuse it. Read-only callers should leave it
	// off.
	Tracking bool
	Includes []Include
}

type QueryOption func(*QueryConfig)

// WithTracking requests a tracked read.
func WithTracking() QueryOption {
	return func(cfg *QueryConfig) {
		cfg.Tracking = true
	}
}

// WithInclude requests eager loading of the named relations.
func WithInclude(relations ...string) QueryOption {
	return func(cfg *QueryConfig) {
		for _, relation := range relations {
			cfg.Includes = append(cfg.Includes, Include{Relation: relation})
		}
	}
}

// ApplyQueryOptions folds options into a QueryConfig.
func ApplyQueryOptions(opts []QueryOption) QueryConfig {
	var cfg QueryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Repository is the domain-side view of a generic store for domain type D.
// Every operation speaks domain vocabulary; the implementation owns the
// translation to its persistence schema.
//
// Expected outcomes travel inside the returned Result: a Get that matches
// nothing is a success with an absent value and status 404, not an error.
// Update, Delete and Attach only stage changes against the active unit of
// work; committing them is the unit of work's responsibility.
type Repository[D any] interface {
	// Create persists a new record. Nil input fails with NullValue (400),
	// conversion or store failures with 500. Success carries status 201.
	Create(ctx context.Context, domain *D) Result[*D]
	// Get fetches at most one record matching spec. A nil spec matches
	// everything.
	Get(ctx context.Context, spec Specification, opts ...QueryOption) Result[*D]
	// GetAll fetches every record matching spec, eagerly loading all declared
	// relations in addition to any explicitly requested includes.
	GetAll(ctx context.Context, spec Specification, opts ...QueryOption) Result[[]D]
	// Update stages a full-record update. Nil input or conversion failure is
	// a hard error.
	Update(ctx context.Context, domain *D) (*D, error)
	// Delete stages a removal.
	Delete(ctx context.Context, domain *D) (*D, error)
	// Attach begins tracking the record without staging any change.
	Attach(ctx context.Context, domain *D) (*D, error)
	// AnyExists reports whether at least one record matches spec.
	AnyExists(ctx context.Context, spec Specification) (bool, error)
	// GetIfExists fetches at most one untracked record matching spec,
	// returning nil when nothing matches.
	GetIfExists(ctx context.Context, spec Specification) (*D, error)
}
