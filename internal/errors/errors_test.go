package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("no such file or directory")
	err := NewPathNotFound("/tmp/missing", cause)

	assert.Contains(t, err.Error(), "path_not_found")
	assert.Contains(t, err.Error(), "/tmp/missing")
	assert.Contains(t, err.Error(), cause.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWatchErrorIsMatchesByKind(t *testing.T) {
	a := NewWatcherClosed()
	b := NewWatcherClosed()
	c := NewPathNotFound("/x", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestIsRecoverable(t *testing.T) {
	assert.False(t, IsRecoverable(NewBackendFailed(nil)))
	assert.True(t, IsRecoverable(NewInterrupted()))
	assert.False(t, IsRecoverable(fmt.Errorf("plain error")))
}

func TestIsKind(t *testing.T) {
	err := NewPermissionDenied("/root", nil)
	assert.True(t, IsKind(err, KindPermissionDenied))
	assert.False(t, IsKind(err, KindPathNotFound))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindPermissionDenied))
}

type recordingLogger struct {
	errors []error
}

func (r *recordingLogger) Error(_ context.Context, err error, _ string, _ ...interface{}) {
	r.errors = append(r.errors, err)
}
func (r *recordingLogger) Warn(context.Context, error, string, ...interface{}) {}

type recordingNotifier struct {
	notified []*WatchError
}

func (r *recordingNotifier) NotifyError(_ context.Context, err *WatchError) error {
	r.notified = append(r.notified, err)
	return nil
}

func TestHandlerNotifiesOnlyNonRecoverable(t *testing.T) {
	logger := &recordingLogger{}
	notifier := &recordingNotifier{}
	handler := NewHandler(logger, notifier)

	handler.Handle(context.Background(), NewBackendFailed(nil))
	handler.Handle(context.Background(), NewInterrupted())
	handler.Handle(context.Background(), nil)

	assert.Len(t, logger.errors, 2)
	assert.Len(t, notifier.notified, 1)
	assert.Equal(t, KindBackendFailed, notifier.notified[0].Kind)
}
