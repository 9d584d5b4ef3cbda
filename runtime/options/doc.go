// Package options builds workflow, child workflow and activity options from
// explicit caller parameters, falling back to the task queue and retry policy
// declared on the type and its supertypes.
//
// Explicit parameters always win. A zero parameter is unset and takes the
// declared value when one exists:
//
//	reader := metadata.NewReader(metadata.NewExtractor(types, nil, logger))
//	builder := options.NewBuilder(reader)
//
//	opts, err := builder.Workflow("billing.ChargeWorkflow", options.WorkflowParams{
//		ExecutionTimeout: time.Hour,
//	})
//
// Resolution errors from the metadata package are wrapped, so
// metadata.IsInvalidType reports unknown types.
package options
