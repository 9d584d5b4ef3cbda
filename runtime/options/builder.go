package options

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// Builder builds workflow and activity options from explicit parameters and
// the attributes declared on the workflow or activity type.
type Builder struct {
	reader *metadata.Reader
	newID  func() string
}

// NewBuilder creates a builder that resolves declarations through reader.
func NewBuilder(reader *metadata.Reader) *Builder {
	return &Builder{
		reader: reader,
		newID:  uuid.NewString,
	}
}

// declared holds the attributes option builders fall back to.
type declared struct {
	taskQueue   string
	retryPolicy *metadata.RetryPolicy
}

// declarations resolves typeName for one capability kind and picks the first
// task queue and retry policy.
func (b *Builder) declarations(typeName string, capability *metadata.Kind) (declared, error) {
	attrs, err := b.reader.Collection(typeName, []*metadata.Kind{capability})
	if err != nil {
		return declared{}, fmt.Errorf("failed to read %s attributes of %s: %w", capability, typeName, err)
	}

	var d declared
	if tq, ok := metadata.FirstOf[metadata.TaskQueue](attrs, metadata.TaskQueueKind); ok {
		d.taskQueue = tq.Name
	}
	if rp, ok := metadata.FirstOf[metadata.RetryPolicy](attrs, metadata.RetryPolicyKind); ok {
		d.retryPolicy = &rp
	}
	return d, nil
}
