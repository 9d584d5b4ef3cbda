package commands

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conduit-lang/sugar/internal/cli/ui"
	"github.com/conduit-lang/sugar/runtime/options"
)

func newOptionsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Build workflow or activity options from declarations",
		Long: `Build the options a workflow client or worker would use for a type.

Flags set explicit values. Anything left unset falls back to the task queue and
retry policy declared on the type, its superclasses and its interfaces.`,
		Example: `  # Start options for a workflow
  sugar options workflow app.OrderWorkflow --execution-timeout 1h

  # Child workflow options with an explicit retry budget
  sugar options child app.OrderWorkflow --retry-attempts 5 --parent-close-policy abandon

  # Activity options as JSON
  sugar options activity app.ChargeActivity --start-to-close-timeout 30s --format json`,
	}

	cmd.AddCommand(newWorkflowOptionsCommand(e))
	cmd.AddCommand(newChildOptionsCommand(e))
	cmd.AddCommand(newActivityOptionsCommand(e))

	return cmd
}

func bindRetryFlags(flags *pflag.FlagSet, p *options.RetryParams) {
	flags.IntVar(&p.Attempts, "retry-attempts", 0, "Maximum attempts (0 falls back to the declared policy)")
	flags.DurationVar(&p.InitInterval, "retry-init-interval", 0, "Backoff before the first retry")
	flags.DurationVar(&p.MaxInterval, "retry-max-interval", 0, "Maximum backoff between retries")
	flags.Float64Var(&p.Backoff, "retry-backoff", 0, "Backoff coefficient (ignored below 1.0)")
	flags.StringSliceVar(&p.NonRetryables, "non-retryable", nil, "Error types that stop retrying")
}

func newWorkflowOptionsCommand(e *env) *cobra.Command {
	var (
		p           options.WorkflowParams
		reusePolicy string
	)

	cmd := &cobra.Command{
		Use:               "workflow [type]",
		Short:             "Options for starting a workflow from a client",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: e.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, err := e.typeArg(args)
			if err != nil {
				return err
			}
			if p.IDReusePolicy, err = options.ParseIDReusePolicy(reusePolicy); err != nil {
				return err
			}
			b, err := e.builder()
			if err != nil {
				return err
			}

			opts, err := b.Workflow(typeName, p)
			if err != nil {
				return err
			}

			v := newOptionsView(typeName, "workflow")
			v.add("task_queue", opts.TaskQueue)
			v.add("workflow_id", opts.WorkflowID)
			v.add("id_reuse_policy", nonDefault(opts.IDReusePolicy.String(), "unspecified"))
			v.addDuration("execution_timeout", opts.ExecutionTimeout)
			v.addDuration("run_timeout", opts.RunTimeout)
			v.addDuration("task_timeout", opts.TaskTimeout)
			v.addDuration("start_delay", opts.StartDelay)
			v.add("eager_start", nonDefault(strconv.FormatBool(opts.EagerStart), "false"))
			v.add("cron_schedule", opts.CronSchedule)
			v.addRetry(opts.RetryPolicy)
			return e.render(cmd.OutOrStdout(), v)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&p.TaskQueue, "task-queue", "", "Task queue (falls back to the declared one)")
	flags.StringVar(&p.WorkflowID, "workflow-id", "", "Workflow ID (generated when empty)")
	flags.StringVar(&reusePolicy, "id-reuse-policy", "", "allow_duplicate, allow_duplicate_failed_only, reject_duplicate or terminate_if_running")
	flags.DurationVar(&p.ExecutionTimeout, "execution-timeout", 0, "Workflow execution timeout")
	flags.DurationVar(&p.RunTimeout, "run-timeout", 0, "Workflow run timeout")
	flags.DurationVar(&p.TaskTimeout, "task-timeout", options.DefaultWorkflowTaskTimeout, "Workflow task timeout (at most 60s)")
	flags.DurationVar(&p.StartDelay, "start-delay", 0, "Delay before the first workflow task")
	flags.BoolVar(&p.EagerStart, "eager-start", false, "Request eager workflow dispatch")
	flags.StringVar(&p.CronSchedule, "cron", "", "Cron schedule")
	bindRetryFlags(flags, &p.Retry)

	return cmd
}

func newChildOptionsCommand(e *env) *cobra.Command {
	var (
		p                                    options.ChildWorkflowParams
		reusePolicy, closePolicy, cancelType string
	)

	cmd := &cobra.Command{
		Use:               "child [type]",
		Short:             "Options for starting a child workflow",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: e.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, err := e.typeArg(args)
			if err != nil {
				return err
			}
			if p.IDReusePolicy, err = options.ParseIDReusePolicy(reusePolicy); err != nil {
				return err
			}
			if p.ParentClosePolicy, err = options.ParseParentClosePolicy(closePolicy); err != nil {
				return err
			}
			if p.CancellationType, err = options.ParseChildCancellationType(cancelType); err != nil {
				return err
			}
			b, err := e.builder()
			if err != nil {
				return err
			}

			opts, err := b.ChildWorkflow(typeName, p)
			if err != nil {
				return err
			}

			v := newOptionsView(typeName, "child")
			v.add("task_queue", opts.TaskQueue)
			v.add("namespace", opts.Namespace)
			v.add("workflow_id", opts.WorkflowID)
			v.add("id_reuse_policy", nonDefault(opts.IDReusePolicy.String(), "unspecified"))
			v.add("parent_close_policy", nonDefault(opts.ParentClosePolicy.String(), "unspecified"))
			v.add("cancellation_type", opts.CancellationType.String())
			v.addDuration("execution_timeout", opts.ExecutionTimeout)
			v.addDuration("run_timeout", opts.RunTimeout)
			v.addDuration("task_timeout", opts.TaskTimeout)
			v.add("cron_schedule", opts.CronSchedule)
			v.addRetry(opts.RetryPolicy)
			return e.render(cmd.OutOrStdout(), v)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&p.TaskQueue, "task-queue", "", "Task queue (falls back to the declared one)")
	flags.StringVar(&p.Namespace, "namespace", "", "Namespace to start the child in")
	flags.StringVar(&p.WorkflowID, "workflow-id", "", "Workflow ID")
	flags.StringVar(&reusePolicy, "id-reuse-policy", "", "allow_duplicate, allow_duplicate_failed_only, reject_duplicate or terminate_if_running")
	flags.StringVar(&closePolicy, "parent-close-policy", "", "terminate, abandon or request_cancel")
	flags.StringVar(&cancelType, "cancellation-type", "", "try_cancel, wait_cancellation_completed, wait_cancellation_requested or abandon")
	flags.DurationVar(&p.ExecutionTimeout, "execution-timeout", 0, "Workflow execution timeout")
	flags.DurationVar(&p.RunTimeout, "run-timeout", 0, "Workflow run timeout")
	flags.DurationVar(&p.TaskTimeout, "task-timeout", options.DefaultWorkflowTaskTimeout, "Workflow task timeout (at most 60s)")
	flags.StringVar(&p.CronSchedule, "cron", "", "Cron schedule")
	bindRetryFlags(flags, &p.Retry)

	return cmd
}

func newActivityOptionsCommand(e *env) *cobra.Command {
	var (
		p          options.ActivityParams
		cancelType string
	)

	cmd := &cobra.Command{
		Use:               "activity [type]",
		Short:             "Options for scheduling an activity",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: e.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, err := e.typeArg(args)
			if err != nil {
				return err
			}
			if p.CancellationType, err = options.ParseActivityCancellationType(cancelType); err != nil {
				return err
			}
			b, err := e.builder()
			if err != nil {
				return err
			}

			opts, err := b.Activity(typeName, p)
			if err != nil {
				return err
			}

			v := newOptionsView(typeName, "activity")
			v.add("task_queue", opts.TaskQueue)
			v.add("activity_id", opts.ActivityID)
			v.add("cancellation_type", opts.CancellationType.String())
			v.addDuration("schedule_to_start_timeout", opts.ScheduleToStartTimeout)
			v.addDuration("start_to_close_timeout", opts.StartToCloseTimeout)
			v.addDuration("schedule_to_close_timeout", opts.ScheduleToCloseTimeout)
			v.addDuration("heartbeat_timeout", opts.HeartbeatTimeout)
			v.addRetry(opts.RetryPolicy)
			return e.render(cmd.OutOrStdout(), v)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&p.TaskQueue, "task-queue", "", "Task queue (falls back to the declared one)")
	flags.StringVar(&p.ActivityID, "activity-id", "", "Business level activity ID")
	flags.StringVar(&cancelType, "cancellation-type", "", "try_cancel, wait_cancellation_completed or abandon")
	flags.DurationVar(&p.ScheduleToStartTimeout, "schedule-to-start-timeout", 0, "Time the activity may wait in the task queue")
	flags.DurationVar(&p.StartToCloseTimeout, "start-to-close-timeout", 0, "Maximum execution time of one attempt")
	flags.DurationVar(&p.ScheduleToCloseTimeout, "schedule-to-close-timeout", 0, "Overall time including retries")
	flags.DurationVar(&p.HeartbeatTimeout, "heartbeat-timeout", 0, "Heartbeat timeout")
	bindRetryFlags(flags, &p.Retry)

	return cmd
}

// optionsView lists the options that are set, in a fixed order for tables and
// as an object for JSON.
type optionsView struct {
	Type    string            `json:"type"`
	Target  string            `json:"target"`
	Options map[string]string `json:"options"`

	keys []string
}

func newOptionsView(typeName, target string) *optionsView {
	return &optionsView{Type: typeName, Target: target, Options: make(map[string]string)}
}

func (v *optionsView) add(key, value string) {
	if value == "" {
		return
	}
	v.keys = append(v.keys, key)
	v.Options[key] = value
}

func (v *optionsView) addDuration(key string, d time.Duration) {
	if d != 0 {
		v.add(key, d.String())
	}
}

func (v *optionsView) addRetry(r options.RetryOptions) {
	if r.MaximumAttempts != 0 {
		v.add("retry.maximum_attempts", strconv.Itoa(r.MaximumAttempts))
	}
	v.addDuration("retry.initial_interval", r.InitialInterval)
	v.addDuration("retry.maximum_interval", r.MaximumInterval)
	if r.BackoffCoefficient != 0 {
		v.add("retry.backoff_coefficient", strconv.FormatFloat(r.BackoffCoefficient, 'g', -1, 64))
	}
	if len(r.NonRetryableErrorTypes) > 0 {
		v.add("retry.non_retryable_error_types", strings.Join(r.NonRetryableErrorTypes, ", "))
	}
}

func (v *optionsView) renderTable(w io.Writer, noColor bool) {
	ui.Header(w, v.Target+" options for "+v.Type, noColor)

	kv := ui.NewKeyValueTable(w, noColor)
	for _, k := range v.keys {
		kv.AddRow(k, v.Options[k])
	}
	kv.Render()
}

func nonDefault(value, def string) string {
	if value == def {
		return ""
	}
	return value
}
