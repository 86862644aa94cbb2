package faqcatalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

func TestReloadScheduler_EmptyScheduleIsNoop(t *testing.T) {
	reloader := &stubReloader{}
	s := NewReloadScheduler(reloader, "  ", newTestLogger())

	require.NoError(t, s.Start())
	s.Stop()
	require.Zero(t, reloader.calls)
}

func TestReloadScheduler_RejectsInvalidSchedule(t *testing.T) {
	s := NewReloadScheduler(&stubReloader{}, "every tuesday-ish", newTestLogger())

	require.Error(t, s.Start())
}

func TestReloadScheduler_ReloadDelegates(t *testing.T) {
	reloader := &stubReloader{}
	s := NewReloadScheduler(reloader, "@every 1h", newTestLogger())
	require.NoError(t, s.Start())
	defer s.Stop()

	s.reload()
	reloader.err = faq.ErrEmptyReload
	s.reload()
	require.Equal(t, 2, reloader.calls)
}

type stubReloader struct {
	calls int
	err   error
}

func (r *stubReloader) Reload(context.Context) (int, error) {
	r.calls++
	return 1, r.err
}
