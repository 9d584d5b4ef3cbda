package options

import (
	"time"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// ActivityParams are the caller's settings for scheduling an activity. Zero
// values are unset.
type ActivityParams struct {
	TaskQueue              string
	Retry                  RetryParams
	ScheduleToStartTimeout time.Duration
	StartToCloseTimeout    time.Duration
	ScheduleToCloseTimeout time.Duration
	HeartbeatTimeout       time.Duration
	ActivityID             string
	CancellationType       ActivityCancellationType
}

// ActivityOptions are the effective options for scheduling an activity.
type ActivityOptions struct {
	TaskQueue              string                   `json:"task_queue,omitempty"`
	ActivityID             string                   `json:"activity_id,omitempty"`
	RetryPolicy            RetryOptions             `json:"retry_policy"`
	ScheduleToStartTimeout time.Duration            `json:"schedule_to_start_timeout,omitempty"`
	StartToCloseTimeout    time.Duration            `json:"start_to_close_timeout,omitempty"`
	ScheduleToCloseTimeout time.Duration            `json:"schedule_to_close_timeout,omitempty"`
	HeartbeatTimeout       time.Duration            `json:"heartbeat_timeout,omitempty"`
	CancellationType       ActivityCancellationType `json:"cancellation_type"`
}

// Activity builds activity options for typeName. The task queue and retry
// policy fall back to the attributes declared for activities.
func (b *Builder) Activity(typeName string, p ActivityParams) (ActivityOptions, error) {
	d, err := b.declarations(typeName, metadata.ForActivity)
	if err != nil {
		return ActivityOptions{}, err
	}

	return ActivityOptions{
		TaskQueue:              firstNonZero(p.TaskQueue, d.taskQueue),
		ActivityID:             p.ActivityID,
		RetryPolicy:            Retry(p.Retry, d.retryPolicy),
		ScheduleToStartTimeout: p.ScheduleToStartTimeout,
		StartToCloseTimeout:    p.StartToCloseTimeout,
		ScheduleToCloseTimeout: p.ScheduleToCloseTimeout,
		HeartbeatTimeout:       p.HeartbeatTimeout,
		CancellationType:       p.CancellationType,
	}, nil
}
