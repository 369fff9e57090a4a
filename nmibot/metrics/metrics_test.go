package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveTransition(t *testing.T) {
	m := New()

	m.ObserveTransition(onboarding.MemberJoined{MemberID: 1}, onboarding.Decision{To: onboarding.NewMember}, true)
	m.ObserveTransition(onboarding.FormSubmitted{MemberID: 1}, onboarding.Decision{
		Tracked: true,
		From:    onboarding.NewMember,
		To:      onboarding.Onboarding,
		Render:  onboarding.RenderEdit,
	}, false)

	joined := m.transitions.WithLabelValues("member_joined", "untracked", "new_member", "create", "true")
	assert.Equal(t, 1.0, testutil.ToFloat64(joined))

	registered := m.transitions.WithLabelValues("form_submitted", "new_member", "onboarding", "edit", "false")
	assert.Equal(t, 1.0, testutil.ToFloat64(registered))
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("chapter %q: %w", "x", onboarding.ErrInvalidChapter), "invalid_chapter"},
		{onboarding.ErrInvalidTransition, "invalid_transition"},
		{errors.New("401 unauthorized"), "platform"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err), tt.err.Error())
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRejection(onboarding.CompletionMarked{}, onboarding.ErrInvalidTransition)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body),
		`nmi_onboarding_rejections_total{event="completion_marked",reason="invalid_transition"} 1`))
}
