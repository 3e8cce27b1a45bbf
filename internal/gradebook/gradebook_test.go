package gradebook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

func seeded(t *testing.T, values map[string]string) (*Service, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	for k, v := range values {
		require.NoError(t, kv.Set(context.Background(), k, v))
	}
	return NewService(kv), kv
}

func TestStudentView_Average(t *testing.T) {
	svc, _ := seeded(t, map[string]string{
		KeyGrades: `{"alice":[
			{"subject":"Math","score":"80","comment":""},
			{"subject":"Art","score":"ab","comment":"see me"},
			{"subject":"History","score":"90","comment":""}
		],"bob":[{"subject":"Math","score":"incomplete","comment":""}]}`,
	})
	ctx := context.Background()

	view, err := svc.StudentView(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, view.Locked)
	assert.Len(t, view.Rows, 3)
	assert.True(t, view.HasAverage)
	assert.Equal(t, 85, view.Average)

	view, err = svc.StudentView(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, view.Rows, 1)
	assert.False(t, view.HasAverage, "no numeric score means no average, not zero")
}

func TestStudentView_LockHidesRows(t *testing.T) {
	svc, _ := seeded(t, map[string]string{
		KeyGrades: `{"alice":[{"subject":"Math","score":"80","comment":""}]}`,
		KeyLocked: "true",
	})

	view, err := svc.StudentView(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, view.Locked)
	assert.Empty(t, view.Rows)
	assert.False(t, view.HasAverage)
}

func TestMalformedValuesFallBack(t *testing.T) {
	svc, _ := seeded(t, map[string]string{
		KeyGrades: `{"alice":[{"subject":`,
		KeyLocked: "maybe",
	})
	ctx := context.Background()

	book, err := svc.Book(ctx)
	require.NoError(t, err)
	assert.Empty(t, book)

	locked, err := svc.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, svc.AddRow(ctx, "alice"), "a malformed book can be written over")
	rows, err := svc.Rows(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTeacherEditing(t *testing.T) {
	svc, kv := seeded(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.AddRow(ctx, "bob"))
	require.NoError(t, svc.AddRow(ctx, "bob"))
	require.NoError(t, svc.UpdateRow(ctx, "bob", 0, "subject", "Math"))
	require.NoError(t, svc.UpdateRow(ctx, "bob", 0, "score", "77"))
	require.NoError(t, svc.UpdateRow(ctx, "bob", 1, "subject", "Art"))
	require.NoError(t, svc.UpdateRow(ctx, "bob", 1, "comment", "great colours"))

	raw, found, err := kv.Get(ctx, KeyGrades)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"bob":[
		{"subject":"Math","score":"77","comment":""},
		{"subject":"Art","score":"","comment":"great colours"}
	]}`, raw)

	require.NoError(t, svc.DeleteRow(ctx, "bob", 0))
	rows, err := svc.Rows(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []models.GradeRow{{Subject: "Art", Comment: "great colours"}}, rows)

	t.Run("errors", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddRow(ctx, "mr.harris"), ErrUnknownStudent, "teachers have no rows")
		assert.ErrorIs(t, svc.AddRow(ctx, "stranger"), ErrUnknownStudent)
		assert.ErrorIs(t, svc.UpdateRow(ctx, "bob", 5, "score", "1"), ErrRowNotFound)
		assert.ErrorIs(t, svc.UpdateRow(ctx, "bob", 0, "grade", "1"), ErrUnknownField)
		assert.ErrorIs(t, svc.DeleteRow(ctx, "bob", -1), ErrRowNotFound)
	})
}

func TestLockToggle(t *testing.T) {
	svc, kv := seeded(t, nil)
	ctx := context.Background()

	locked, err := svc.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked, "unset means unlocked")

	require.NoError(t, svc.SetLocked(ctx, true))
	raw, _, _ := kv.Get(ctx, KeyLocked)
	assert.Equal(t, "true", raw)

	require.NoError(t, svc.SetLocked(ctx, false))
	locked, err = svc.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestAnnouncement_BroadcastThenClear(t *testing.T) {
	svc, kv := seeded(t, nil)
	ctx := context.Background()

	msg, err := svc.Announcement(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)

	require.NoError(t, svc.Broadcast(ctx, "  Buses leave at 3pm  "))
	msg, err = svc.Announcement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Buses leave at 3pm", msg)

	require.NoError(t, svc.Broadcast(ctx, "Second teacher overrides"))
	msg, _ = svc.Announcement(ctx)
	assert.Equal(t, "Second teacher overrides", msg)

	require.NoError(t, svc.ClearAnnouncement(ctx))
	raw, found, err := kv.Get(ctx, KeyAnnouncement)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", raw)

	assert.ErrorIs(t, svc.Broadcast(ctx, "   "), ErrEmptyMessage)
}

func TestTeacherView(t *testing.T) {
	svc, _ := seeded(t, map[string]string{
		KeyGrades:       `{"alice":[{"subject":"Math","score":"90","comment":""}],"ghost":[{"subject":"x","score":"1","comment":""}]}`,
		KeyAnnouncement: "Picture day",
	})

	view, err := svc.TeacherView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Picture day", view.Announcement)
	assert.False(t, view.Locked)

	names := make([]string, len(view.Students))
	for i, s := range view.Students {
		names[i] = s.Username
	}
	assert.Equal(t, Students(), names, "every roster student, nobody else")
	assert.Equal(t, 90, view.Students[0].Average)
	assert.True(t, view.Students[0].HasAverage)
}

func TestCurrentUser(t *testing.T) {
	session := store.WithPrefix(store.NewMemoryStore(), "session:s1:")
	ctx := context.Background()

	user, err := CurrentUser(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = SetCurrentUser(ctx, session, "nobody")
	assert.ErrorIs(t, err, ErrNotOnRoster)

	_, err = SetCurrentUser(ctx, session, " ms.nguyen ")
	require.NoError(t, err)
	user, err = CurrentUser(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleTeacher, user.Role)

	t.Run("stored role is not trusted", func(t *testing.T) {
		require.NoError(t, session.Set(ctx, KeyCurrentUser, `{"username":"alice","role":"teacher"}`))
		user, err := CurrentUser(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)
	})

	t.Run("malformed value means nobody", func(t *testing.T) {
		require.NoError(t, session.Set(ctx, KeyCurrentUser, `{"user`))
		user, err := CurrentUser(ctx, session)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	require.NoError(t, ClearCurrentUser(ctx, session))
	user, err = CurrentUser(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, user)
}
