package identifiable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DillonStreator/identifiable/stylist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID       string
	PublicID string
	URLID    string
}

func (u *user) IdentifierField(column string) string {
	switch column {
	case "public_id":
		return u.PublicID
	case "url_id":
		return u.URLID
	}
	return ""
}

func (u *user) SetIdentifierField(column, value string) {
	switch column {
	case "public_id":
		u.PublicID = value
	case "url_id":
		u.URLID = value
	}
}

// sequence hands out candidates in order and counts calls.
type sequence struct {
	calls int
}

func (s *sequence) RandomID() (string, error) {
	s.calls++
	return fmt.Sprintf("candidate-%d", s.calls), nil
}

// takenUntil reports the first k candidates as taken.
func takenUntil(k int) (*int, Checker) {
	checks := new(int)
	return checks, CheckerFunc(func(ctx context.Context, column, value string) (bool, error) {
		*checks++
		return *checks <= k, nil
	})
}

type countingObserver struct {
	mu         sync.Mutex
	attempts   int
	collisions int
	assigned   int
	exhausted  int
}

func (o *countingObserver) Attempt(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts++
}

func (o *countingObserver) Collision(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.collisions++
}

func (o *countingObserver) Assigned(_ string, attempts int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.assigned = attempts
}

func (o *countingObserver) Exhausted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exhausted++
}

func newTestType(t *testing.T, opts ...Option) (*Type, *sequence) {
	t.Helper()
	typ, err := Register(usersSchema, opts...)
	require.NoError(t, err)
	seq := &sequence{}
	typ.generator = seq
	return typ, seq
}

func TestAssign_SetsUnusedIdentifier(t *testing.T) {
	typ, err := Register(usersSchema, WithLength(8))
	require.NoError(t, err)

	u := &user{}
	_, checker := takenUntil(0)
	require.NoError(t, typ.Assign(context.Background(), u, checker))
	assert.Regexp(t, `^[0-9]{8}$`, u.PublicID)
}

func TestAssign_LeavesExistingIdentifier(t *testing.T) {
	typ, seq := newTestType(t)
	checks, checker := takenUntil(0)

	u := &user{PublicID: "existing"}
	require.NoError(t, typ.Assign(context.Background(), u, checker))

	assert.Equal(t, "existing", u.PublicID)
	assert.Equal(t, 0, seq.calls)
	assert.Equal(t, 0, *checks)
}

func TestAssign_RetriesCollisions(t *testing.T) {
	for _, k := range []int{0, 1, 5, 50, 99} {
		t.Run(fmt.Sprintf("%d collisions", k), func(t *testing.T) {
			observer := &countingObserver{}
			typ, seq := newTestType(t, WithObserver(observer))
			checks, checker := takenUntil(k)

			u := &user{}
			require.NoError(t, typ.Assign(context.Background(), u, checker))

			assert.Equal(t, k+1, seq.calls)
			assert.Equal(t, k+1, *checks)
			assert.Equal(t, fmt.Sprintf("candidate-%d", k+1), u.PublicID)
			assert.Equal(t, k+1, observer.attempts)
			assert.Equal(t, k, observer.collisions)
			assert.Equal(t, k+1, observer.assigned)
			assert.Equal(t, 0, observer.exhausted)
		})
	}
}

func TestAssign_Exhausted(t *testing.T) {
	observer := &countingObserver{}
	typ, seq := newTestType(t, WithObserver(observer))
	checks, checker := takenUntil(MaxAttempts)

	u := &user{}
	err := typ.Assign(context.Background(), u, checker)

	require.ErrorIs(t, err, ErrRanOutOfAttemptsToSetPublicID)
	var target *ExhaustedError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, MaxAttempts, target.Attempts)
	assert.Equal(t, "users", target.Table)
	assert.Equal(t, "public_id", target.Column)

	assert.Empty(t, u.PublicID)
	assert.Equal(t, MaxAttempts, seq.calls)
	assert.Equal(t, MaxAttempts, *checks)
	assert.Equal(t, 1, observer.exhausted)
}

func TestAssign_MaxAttempts(t *testing.T) {
	typ, seq := newTestType(t, WithMaxAttempts(3))
	_, checker := takenUntil(1000)

	err := typ.Assign(context.Background(), &user{}, checker)
	require.ErrorIs(t, err, ErrRanOutOfAttemptsToSetPublicID)
	assert.Equal(t, 3, seq.calls)
}

func TestAssign_CheckerError(t *testing.T) {
	typ, seq := newTestType(t)
	boom := errors.New("connection reset")
	checker := CheckerFunc(func(ctx context.Context, column, value string) (bool, error) {
		return false, boom
	})

	u := &user{}
	err := typ.Assign(context.Background(), u, checker)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRanOutOfAttemptsToSetPublicID)
	assert.Empty(t, u.PublicID)
	assert.Equal(t, 1, seq.calls)
}

func TestAssign_CustomColumn(t *testing.T) {
	typ, err := Register(usersSchema, WithColumn("url_id"), WithStyle(stylist.Alphanumeric))
	require.NoError(t, err)

	var checkedColumn string
	checker := CheckerFunc(func(ctx context.Context, column, value string) (bool, error) {
		checkedColumn = column
		return false, nil
	})

	u := &user{}
	require.NoError(t, typ.Assign(context.Background(), u, checker))
	assert.Equal(t, "url_id", checkedColumn)
	assert.Regexp(t, `^[A-Za-z0-9]{8}$`, u.URLID)
	assert.Empty(t, u.PublicID)
}

func TestAssigner_Ensure(t *testing.T) {
	typ, seq := newTestType(t)
	_, checker := takenUntil(0)
	assigner := typ.Bind(checker)
	assert.Same(t, typ, assigner.Type())

	u := &user{}
	require.NoError(t, assigner.Ensure(context.Background(), u))
	first := u.PublicID
	require.NotEmpty(t, first)

	require.NoError(t, assigner.Ensure(context.Background(), u))
	assert.Equal(t, first, u.PublicID)
	assert.Equal(t, 1, seq.calls)
}
