package metadata

import (
	"fmt"
	"sync"
	"time"
)

// Capability kinds. Attributes usable by workflow and activity option builders
// specialize these.
var (
	ForWorkflow = NewKind("workflow")
	ForActivity = NewKind("activity")
)

// Built-in attribute kinds.
var (
	TaskQueueKind   = NewKind("task_queue", ForWorkflow, ForActivity)
	RetryPolicyKind = NewKind("retry_policy", ForWorkflow, ForActivity)
)

// TaskQueue names the task queue a workflow or activity is dispatched to.
type TaskQueue struct {
	Name string `json:"name" mapstructure:"name"`
}

// Kind implements Attribute.
func (TaskQueue) Kind() *Kind { return TaskQueueKind }

// RetryPolicy declares default retry behavior.
type RetryPolicy struct {
	// Attempts is the maximum number of attempts, 0 means unlimited
	Attempts int `json:"attempts,omitempty" mapstructure:"attempts"`
	// InitInterval is the backoff before the first retry
	InitInterval time.Duration `json:"init_interval,omitempty" mapstructure:"init_interval"`
	// MaxInterval caps the backoff between retries
	MaxInterval time.Duration `json:"max_interval,omitempty" mapstructure:"max_interval"`
	// Backoff multiplies the interval after every retry
	Backoff float64 `json:"backoff,omitempty" mapstructure:"backoff"`
	// NonRetryables are error types that stop retrying
	NonRetryables []string `json:"non_retryables,omitempty" mapstructure:"non_retryables"`
}

// Kind implements Attribute.
func (RetryPolicy) Kind() *Kind { return RetryPolicyKind }

// KindRegistry maps kind names to kinds, for callers that receive kind names
// as text (configuration files, command line flags).
type KindRegistry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
	order []string
}

// NewKindRegistry creates a registry holding kinds. It panics if a kind is
// invalid or a name repeats.
func NewKindRegistry(kinds ...*Kind) *KindRegistry {
	r := &KindRegistry{kinds: make(map[string]*Kind)}
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}

// BuiltinKinds returns a new registry with the built-in kinds.
func BuiltinKinds() *KindRegistry {
	return NewKindRegistry(ForWorkflow, ForActivity, TaskQueueKind, RetryPolicyKind)
}

// Register adds kind under its name.
func (r *KindRegistry) Register(kind *Kind) error {
	if !kind.valid() {
		return &InvalidKindError{Kind: kindName(kind), Reason: "kind must be created with NewKind and named"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.kinds[kind.name]; ok {
		if existing == kind {
			return nil
		}
		return fmt.Errorf("kind %q already registered", kind.name)
	}
	r.kinds[kind.name] = kind
	r.order = append(r.order, kind.name)
	return nil
}

// Lookup finds a kind by name.
func (r *KindRegistry) Lookup(name string) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if k, ok := r.kinds[name]; ok {
		return k, nil
	}
	return nil, &InvalidKindError{Kind: name, Reason: "unknown kind"}
}

// LookupAll finds every named kind, failing on the first unknown name.
func (r *KindRegistry) LookupAll(names []string) ([]*Kind, error) {
	kinds := make([]*Kind, 0, len(names))
	for _, name := range names {
		k, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Names returns the registered names in registration order.
func (r *KindRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
