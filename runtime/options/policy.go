package options

import (
	"fmt"
	"strings"
)

// IDReusePolicy controls whether a workflow ID of a closed execution may be
// reused.
type IDReusePolicy int

const (
	IDReuseUnspecified IDReusePolicy = iota
	IDReuseAllowDuplicate
	IDReuseAllowDuplicateFailedOnly
	IDReuseRejectDuplicate
	IDReuseTerminateIfRunning
)

var idReusePolicyNames = []string{
	"unspecified",
	"allow_duplicate",
	"allow_duplicate_failed_only",
	"reject_duplicate",
	"terminate_if_running",
}

func (p IDReusePolicy) String() string { return enumName(idReusePolicyNames, int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p IDReusePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ParseIDReusePolicy parses a policy name as printed by String.
func ParseIDReusePolicy(s string) (IDReusePolicy, error) {
	v, err := parseEnum("id reuse policy", idReusePolicyNames, s)
	return IDReusePolicy(v), err
}

// ParentClosePolicy decides what happens to a child workflow when its parent
// closes.
type ParentClosePolicy int

const (
	ParentCloseUnspecified ParentClosePolicy = iota
	ParentCloseTerminate
	ParentCloseAbandon
	ParentCloseRequestCancel
)

var parentClosePolicyNames = []string{"unspecified", "terminate", "abandon", "request_cancel"}

func (p ParentClosePolicy) String() string { return enumName(parentClosePolicyNames, int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p ParentClosePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ParseParentClosePolicy parses a policy name as printed by String.
func ParseParentClosePolicy(s string) (ParentClosePolicy, error) {
	v, err := parseEnum("parent close policy", parentClosePolicyNames, s)
	return ParentClosePolicy(v), err
}

// ChildCancellationType decides when cancelling a child workflow fails the
// parent's pending call.
type ChildCancellationType int

const (
	ChildTryCancel ChildCancellationType = iota
	ChildWaitCancellationCompleted
	ChildWaitCancellationRequested
	ChildAbandon
)

var childCancellationNames = []string{"try_cancel", "wait_cancellation_completed", "wait_cancellation_requested", "abandon"}

func (c ChildCancellationType) String() string { return enumName(childCancellationNames, int(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c ChildCancellationType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseChildCancellationType parses a cancellation type as printed by String.
func ParseChildCancellationType(s string) (ChildCancellationType, error) {
	v, err := parseEnum("child cancellation type", childCancellationNames, s)
	return ChildCancellationType(v), err
}

// ActivityCancellationType decides whether a workflow waits for a cancelled
// activity to finish.
type ActivityCancellationType int

const (
	ActivityTryCancel ActivityCancellationType = iota
	ActivityWaitCancellationCompleted
	ActivityAbandon
)

var activityCancellationNames = []string{"try_cancel", "wait_cancellation_completed", "abandon"}

func (c ActivityCancellationType) String() string { return enumName(activityCancellationNames, int(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c ActivityCancellationType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseActivityCancellationType parses a cancellation type as printed by String.
func ParseActivityCancellationType(s string) (ActivityCancellationType, error) {
	v, err := parseEnum("activity cancellation type", activityCancellationNames, s)
	return ActivityCancellationType(v), err
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(what string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of: %s)", what, s, strings.Join(names, ", "))
}
