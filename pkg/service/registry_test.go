package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	alias       string
	err         error
	initialized bool
}

func (f *fakeService) Alias() string { return f.alias }

func (f *fakeService) Initialize(_ context.Context) error {
	f.initialized = true
	return f.err
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	svc := &fakeService{alias: "NavigationService"}

	require.NoError(t, r.Register(t.Context(), svc))
	assert.True(t, svc.initialized)
	assert.Same(t, svc, r.Get("navigationservice"))
	assert.Nil(t, r.Get("other"))

	got, ok := Lookup[*fakeService](r, "NAVIGATIONSERVICE")
	require.True(t, ok)
	assert.Same(t, svc, got)
}

func TestRegisterInvalidAlias(t *testing.T) {
	r := NewRegistry()
	svc := &fakeService{}

	err := r.Register(t.Context(), svc)
	assert.ErrorIs(t, err, ErrInvalidAlias)
	assert.False(t, svc.initialized)
}

func TestRegisterInitializeFailure(t *testing.T) {
	r := NewRegistry()
	cause := errors.New("boom")

	err := r.Register(t.Context(), &fakeService{alias: "broken", err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitialize)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, r.Get("broken"))
}

func TestLookupWrongType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(t.Context(), &fakeService{alias: "a"}))

	type other struct{ Service }
	_, ok := Lookup[*other](r, "a")
	assert.False(t, ok)

	_, ok = Lookup[*fakeService](r, "missing")
	assert.False(t, ok)
}
