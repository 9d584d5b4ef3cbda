package options

import (
	"errors"
	"maps"
	"time"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

const (
	// DefaultWorkflowTaskTimeout is the server default for a single workflow task
	DefaultWorkflowTaskTimeout = 10 * time.Second
	// MaxWorkflowTaskTimeout is the largest workflow task timeout the server accepts
	MaxWorkflowTaskTimeout = 60 * time.Second
)

// ErrStartDelayWithCron is returned when a start delay and a cron schedule are
// both requested.
var ErrStartDelayWithCron = errors.New("start delay cannot be combined with a cron schedule")

// WorkflowParams are the caller's settings for starting a workflow from a
// client. Zero values are unset.
type WorkflowParams struct {
	TaskQueue        string
	Retry            RetryParams
	ExecutionTimeout time.Duration
	RunTimeout       time.Duration
	TaskTimeout      time.Duration
	StartDelay       time.Duration
	EagerStart       bool
	WorkflowID       string
	IDReusePolicy    IDReusePolicy
	CronSchedule     string
	SearchAttributes map[string]any
	Memo             map[string]any
}

// WorkflowOptions are the effective options for starting a workflow.
type WorkflowOptions struct {
	TaskQueue        string         `json:"task_queue,omitempty"`
	WorkflowID       string         `json:"workflow_id"`
	IDReusePolicy    IDReusePolicy  `json:"id_reuse_policy"`
	RetryPolicy      RetryOptions   `json:"retry_policy"`
	ExecutionTimeout time.Duration  `json:"execution_timeout,omitempty"`
	RunTimeout       time.Duration  `json:"run_timeout,omitempty"`
	TaskTimeout      time.Duration  `json:"task_timeout,omitempty"`
	StartDelay       time.Duration  `json:"start_delay,omitempty"`
	EagerStart       bool           `json:"eager_start,omitempty"`
	CronSchedule     string         `json:"cron_schedule,omitempty"`
	SearchAttributes map[string]any `json:"search_attributes,omitempty"`
	Memo             map[string]any `json:"memo,omitempty"`
}

// ChildWorkflowParams are the caller's settings for starting a child workflow
// from workflow code. Zero values are unset.
type ChildWorkflowParams struct {
	TaskQueue         string
	Namespace         string
	Retry             RetryParams
	ExecutionTimeout  time.Duration
	RunTimeout        time.Duration
	TaskTimeout       time.Duration
	ParentClosePolicy ParentClosePolicy
	CancellationType  ChildCancellationType
	WorkflowID        string
	IDReusePolicy     IDReusePolicy
	CronSchedule      string
	SearchAttributes  map[string]any
	Memo              map[string]any
}

// ChildWorkflowOptions are the effective options for starting a child workflow.
type ChildWorkflowOptions struct {
	TaskQueue         string                `json:"task_queue,omitempty"`
	Namespace         string                `json:"namespace,omitempty"`
	WorkflowID        string                `json:"workflow_id,omitempty"`
	IDReusePolicy     IDReusePolicy         `json:"id_reuse_policy"`
	RetryPolicy       RetryOptions          `json:"retry_policy"`
	ExecutionTimeout  time.Duration         `json:"execution_timeout,omitempty"`
	RunTimeout        time.Duration         `json:"run_timeout,omitempty"`
	TaskTimeout       time.Duration         `json:"task_timeout,omitempty"`
	ParentClosePolicy ParentClosePolicy     `json:"parent_close_policy"`
	CancellationType  ChildCancellationType `json:"cancellation_type"`
	CronSchedule      string                `json:"cron_schedule,omitempty"`
	SearchAttributes  map[string]any        `json:"search_attributes,omitempty"`
	Memo              map[string]any        `json:"memo,omitempty"`
}

// Workflow builds client start options for typeName. The task queue and retry
// policy fall back to the attributes declared for workflows. A missing
// workflow ID is generated.
func (b *Builder) Workflow(typeName string, p WorkflowParams) (WorkflowOptions, error) {
	if p.StartDelay != 0 && p.CronSchedule != "" {
		return WorkflowOptions{}, ErrStartDelayWithCron
	}

	d, err := b.declarations(typeName, metadata.ForWorkflow)
	if err != nil {
		return WorkflowOptions{}, err
	}

	opts := WorkflowOptions{
		TaskQueue:        firstNonZero(p.TaskQueue, d.taskQueue),
		WorkflowID:       p.WorkflowID,
		IDReusePolicy:    p.IDReusePolicy,
		RetryPolicy:      Retry(p.Retry, d.retryPolicy),
		ExecutionTimeout: p.ExecutionTimeout,
		RunTimeout:       p.RunTimeout,
		TaskTimeout:      workflowTaskTimeout(p.TaskTimeout),
		StartDelay:       p.StartDelay,
		EagerStart:       p.EagerStart,
		CronSchedule:     p.CronSchedule,
		SearchAttributes: maps.Clone(p.SearchAttributes),
		Memo:             maps.Clone(p.Memo),
	}
	if opts.WorkflowID == "" {
		opts.WorkflowID = b.newID()
	}
	return opts, nil
}

// ChildWorkflow builds child workflow options for typeName. An empty workflow
// ID is left for the workflow runtime to derive deterministically.
func (b *Builder) ChildWorkflow(typeName string, p ChildWorkflowParams) (ChildWorkflowOptions, error) {
	d, err := b.declarations(typeName, metadata.ForWorkflow)
	if err != nil {
		return ChildWorkflowOptions{}, err
	}

	return ChildWorkflowOptions{
		TaskQueue:         firstNonZero(p.TaskQueue, d.taskQueue),
		Namespace:         p.Namespace,
		WorkflowID:        p.WorkflowID,
		IDReusePolicy:     p.IDReusePolicy,
		RetryPolicy:       Retry(p.Retry, d.retryPolicy),
		ExecutionTimeout:  p.ExecutionTimeout,
		RunTimeout:        p.RunTimeout,
		TaskTimeout:       workflowTaskTimeout(p.TaskTimeout),
		ParentClosePolicy: p.ParentClosePolicy,
		CancellationType:  p.CancellationType,
		CronSchedule:      p.CronSchedule,
		SearchAttributes:  maps.Clone(p.SearchAttributes),
		Memo:              maps.Clone(p.Memo),
	}, nil
}

// workflowTaskTimeout returns 0 for the server default and clamps anything
// else to MaxWorkflowTaskTimeout.
func workflowTaskTimeout(d time.Duration) time.Duration {
	if d <= 0 || d == DefaultWorkflowTaskTimeout {
		return 0
	}
	return min(d, MaxWorkflowTaskTimeout)
}
