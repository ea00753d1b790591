package taskwheel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncBodyRunsInlineAndReportsCompletion(t *testing.T) {
	ran := false
	factory := NewSyncBody(func(ctx context.Context) error {
		ran = true
		return nil
	})

	var gotErr error
	doneCalled := false
	body, err := factory(context.Background(), func(e error) {
		doneCalled = true
		gotErr = e
	})

	require.NoError(t, err)
	assert.True(t, ran, "closure should have already run by the time factory returns")
	assert.True(t, doneCalled)
	assert.NoError(t, gotErr)
	assert.NoError(t, body.Cancel(), "sync body cancel is a no-op")
}

func TestNewSyncBodyRecoversPanicIntoOnDoneError(t *testing.T) {
	factory := NewSyncBody(func(ctx context.Context) error {
		panic("boom")
	})

	var gotErr error
	body, err := factory(context.Background(), func(e error) {
		gotErr = e
	})

	require.NoError(t, err, "a panicking body must not fail the factory call itself")
	require.NotNil(t, body)
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "boom")
}

func TestNewSyncBodyPropagatesOrdinaryError(t *testing.T) {
	wantErr := errors.New("sync failure")
	factory := NewSyncBody(func(ctx context.Context) error {
		return wantErr
	})

	var gotErr error
	_, err := factory(context.Background(), func(e error) { gotErr = e })
	require.NoError(t, err)
	assert.ErrorIs(t, gotErr, wantErr)
}

func TestNewAsyncBodyRunsOffGoroutineAndIsCancelable(t *testing.T) {
	started := make(chan struct{})
	factory := NewAsyncBody(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	done := make(chan error, 1)
	body, err := factory(context.Background(), func(e error) { done <- e })
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("async body never started")
	}

	require.NoError(t, body.Cancel())

	select {
	case e := <-done:
		assert.ErrorIs(t, e, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancel never reached onDone")
	}
}

func TestNewAsyncBodyRecoversPanic(t *testing.T) {
	factory := NewAsyncBody(func(ctx context.Context) error {
		panic("async boom")
	})

	done := make(chan error, 1)
	_, err := factory(context.Background(), func(e error) { done <- e })
	require.NoError(t, err)

	select {
	case e := <-done:
		require.Error(t, e)
		assert.Contains(t, e.Error(), "async boom")
	case <-time.After(time.Second):
		t.Fatal("panic recovery never reported to onDone")
	}
}

func TestInstanceHandleCancelIsIdempotent(t *testing.T) {
	h := &instanceHandle{body: &syncBody{}}
	assert.NoError(t, h.Cancel())
	assert.NoError(t, h.Cancel())
}

func TestInstanceHandleDeadline(t *testing.T) {
	deadline := time.Now().Add(time.Minute)
	h := &instanceHandle{deadline: deadline, hasDeadline: true}
	got, ok := h.Deadline()
	assert.True(t, ok)
	assert.Equal(t, deadline, got)

	h2 := &instanceHandle{}
	_, ok = h2.Deadline()
	assert.False(t, ok)
}
