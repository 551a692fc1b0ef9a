package resume

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProfiles struct {
	p   profile.Profile
	err error
}

func (s staticProfiles) Load(ctx context.Context, owner string) (profile.Profile, error) {
	return s.p, s.err
}

func newService(t *testing.T, store kv.Store) (*Service, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	return NewService(store, log, staticProfiles{p: profile.Demo()}), hook
}

func TestLoadDerivesFromProfileOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, kv.NewMemory())

	first, err := svc.Load(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, profile.Demo().FirstName, first.FirstName)

	second, err := svc.Load(ctx, "owner")
	require.NoError(t, err)

	// ids are generated once and kept
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resume changed between loads (-first +second):\n%s", diff)
	}
}

func TestUpdatePersists(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc, _ := newService(t, store)

	saved, err := svc.Update(ctx, "owner", func(r *Resume) error {
		_, err := r.Add(ListCertifications)
		return err
	})
	require.NoError(t, err)

	other, _ := newService(t, store)
	got, err := other.Load(ctx, "owner")
	require.NoError(t, err)

	if diff := cmp.Diff(saved, got); diff != "" {
		t.Fatalf("reloaded resume mismatch (-saved +got):\n%s", diff)
	}
}

func TestUpdateErrorKeepsStoredResume(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, kv.NewMemory())

	before, err := svc.Load(ctx, "owner")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner", func(r *Resume) error {
		r.FirstName = "changed"
		return r.Update(ListExperience, "missing", map[string]string{"company": "x"})
	})
	require.ErrorIs(t, err, ErrEntryNotFound)

	after, err := svc.Load(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, before.FirstName, after.FirstName)
}

func TestMalformedResumeIsRederived(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, "resume:owner", []byte("{not json")))

	svc, hook := newService(t, store)
	r, err := svc.Load(ctx, "owner")
	require.NoError(t, err)

	assert.Equal(t, profile.Demo().Email, r.Email)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestProfileFailureIsReported(t *testing.T) {
	boom := errors.New("profile store down")
	log, _ := test.NewNullLogger()
	svc := NewService(kv.NewMemory(), log, staticProfiles{err: boom})

	_, err := svc.Load(context.Background(), "owner")
	assert.ErrorIs(t, err, boom)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, kv.NewMemory())

	_, err := svc.Update(ctx, "owner", func(r *Resume) error {
		r.JobTitle = "Architecte"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "owner"))

	r, err := svc.Load(ctx, "owner")
	require.NoError(t, err)
	assert.NotEqual(t, "Architecte", r.JobTitle)
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, kv.NewMemory())

	before, err := svc.Load(ctx, "owner")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(ctx, "owner", func(r *Resume) error {
				_, err := r.Add(ListLanguages)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	after, err := svc.Load(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, after.Languages, len(before.Languages)+20)
}
