package options

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicies(t *testing.T) {
	p, err := ParseIDReusePolicy("reject_duplicate")
	require.NoError(t, err)
	assert.Equal(t, IDReuseRejectDuplicate, p)

	pc, err := ParseParentClosePolicy(" Terminate ")
	require.NoError(t, err)
	assert.Equal(t, ParentCloseTerminate, pc)

	cc, err := ParseChildCancellationType("")
	require.NoError(t, err)
	assert.Equal(t, ChildTryCancel, cc)

	ac, err := ParseActivityCancellationType("abandon")
	require.NoError(t, err)
	assert.Equal(t, ActivityAbandon, ac)

	_, err = ParseParentClosePolicy("sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_cancel")
}

func TestPolicyStrings(t *testing.T) {
	assert.Equal(t, "terminate_if_running", IDReuseTerminateIfRunning.String())
	assert.Equal(t, "unknown(42)", ParentClosePolicy(42).String())

	data, err := json.Marshal(ActivityOptions{CancellationType: ActivityWaitCancellationCompleted})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cancellation_type":"wait_cancellation_completed"`)
}
