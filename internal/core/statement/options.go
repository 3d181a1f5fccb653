package statement

import "time"

// FlushMode mirrors the host engine's session flush modes.
type FlushMode string

const (
	// FlushDefault leaves flushing to the session default.
	FlushDefault FlushMode = ""
	// FlushAuto flushes before queries as needed.
	FlushAuto FlushMode = "auto"
	// FlushCommit flushes only at transaction commit.
	FlushCommit FlushMode = "commit"
	// FlushManual disables automatic flushing.
	FlushManual FlushMode = "manual"
)

// LockMode mirrors the host engine's pessimistic/optimistic lock requests.
type LockMode string

const (
	// LockNone requests no lock.
	LockNone LockMode = ""
	// LockRead requests a shared lock.
	LockRead LockMode = "read"
	// LockWrite requests an exclusive lock.
	LockWrite LockMode = "write"
	// LockPessimisticRead requests a pessimistic shared lock.
	LockPessimisticRead LockMode = "pessimistic_read"
	// LockPessimisticWrite requests a pessimistic exclusive lock.
	LockPessimisticWrite LockMode = "pessimistic_write"
)

// Limit is an offset/max-rows pair supplied through query options at
// execution time rather than baked into the statement tree.
type Limit struct {
	Offset  *int
	MaxRows *int
}

// IsSet reports whether either side of the limit is present.
func (l Limit) IsSet() bool {
	return l.Offset != nil || l.MaxRows != nil
}

// QueryOptions carries the per-execution options the host engine attaches
// to a statement. The MongoDB dialect supports only Limit; every other
// field must be absent or default.
type QueryOptions struct {
	Timeout               *time.Duration
	FlushMode             FlushMode
	ReadOnly              *bool
	FetchGraph            string
	TupleTransformer      interface{}
	ResultListTransformer interface{}
	CacheResults          *bool
	EnabledFetchProfiles  []string
	DisabledFetchProfiles []string
	Lock                  LockMode
	Hints                 []string
	FetchSize             *int
	Limit                 Limit
}

// Bindings maps parameter identities to their bound values. Named
// parameters key by name, positional parameters by "<ordinal>".
type Bindings map[string]interface{}
