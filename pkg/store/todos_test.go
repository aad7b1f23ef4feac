package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTodo(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		want    string
		err     error
	}{
		{name: "Trimmed", content: "  buy milk \n", want: "buy milk"},
		{name: "Empty", content: "", err: ErrEmpty},
		{name: "Blank", content: " \t ", err: ErrEmpty},
		{name: "AtLimit", content: strings.Repeat("a", MaxTodoContent), want: strings.Repeat("a", MaxTodoContent)},
		{name: "TooLong", content: strings.Repeat("a", MaxTodoContent+1), err: ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := s.AddTodo(ctx, tt.content)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, todo.Content)
			assert.False(t, todo.Done)
			assert.Equal(t, PriorityNormal, todo.Priority)
			assert.Len(t, todo.ID, 36)

			got, err := s.GetTodo(ctx, todo.ID)
			require.NoError(t, err)
			assert.Equal(t, todo, got)
		})
	}
}

func TestListTodosOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddTodo(ctx, "a")
	b, _ := s.AddTodo(ctx, "b")
	c, _ := s.AddTodo(ctx, "c")
	d, _ := s.AddTodo(ctx, "d")

	require.NoError(t, s.SetTodoPriority(ctx, a.ID, PriorityUrgent))
	_, err := s.ToggleTodo(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, s.SetTodoPriority(ctx, b.ID, PriorityUrgent))

	todos, err := s.ListTodos(ctx)
	require.NoError(t, err)

	var ids []string
	for _, todo := range todos {
		ids = append(ids, todo.ID)
	}
	// pending first, then priority, then newest
	assert.Equal(t, []string{a.ID, d.ID, c.ID, b.ID}, ids)
}

func TestToggleTodo(t *testing.T) {
	s, c := newTestStore(t)
	ctx := context.Background()

	todo, err := s.AddTodo(ctx, "ship it")
	require.NoError(t, err)

	done, err := s.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)
	assert.Equal(t, c.t.UnixMilli(), done.DoneAt)

	stored, err := s.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, done, stored)

	undone, err := s.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, undone.Done)
	assert.Zero(t, undone.DoneAt)

	_, err = s.ToggleTodo(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoPriorityAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	todo, err := s.AddTodo(ctx, "x")
	require.NoError(t, err)

	assert.Error(t, s.SetTodoPriority(ctx, todo.ID, Priority(3)))
	assert.ErrorIs(t, s.SetTodoPriority(ctx, "missing", PriorityImportant), ErrNotFound)
	require.NoError(t, s.SetTodoPriority(ctx, todo.ID, PriorityImportant))

	got, err := s.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, PriorityImportant, got.Priority)

	require.NoError(t, s.DeleteTodo(ctx, todo.ID))
	assert.ErrorIs(t, s.DeleteTodo(ctx, todo.ID), ErrNotFound)
	_, err = s.GetTodo(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPriorityNext(t *testing.T) {
	assert.Equal(t, PriorityImportant, PriorityNormal.Next())
	assert.Equal(t, PriorityUrgent, PriorityImportant.Next())
	assert.Equal(t, PriorityNormal, PriorityUrgent.Next())
	assert.Equal(t, "urgent", PriorityUrgent.String())
}

func TestArchiveOldTodos(t *testing.T) {
	s, c := newTestStore(t)
	ctx := context.Background()

	old, _ := s.AddTodo(ctx, "old")
	recent, _ := s.AddTodo(ctx, "recent")
	pending, _ := s.AddTodo(ctx, "pending")

	_, err := s.ToggleTodo(ctx, old.ID)
	require.NoError(t, err)
	c.t = c.t.Add(ArchiveAfter)
	_, err = s.ToggleTodo(ctx, recent.ID)
	require.NoError(t, err)
	c.t = c.t.Add(ArchiveAfter / 2)

	count, err := s.ArchiveOldTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = s.GetTodo(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetTodo(ctx, recent.ID)
	assert.NoError(t, err)
	_, err = s.GetTodo(ctx, pending.ID)
	assert.NoError(t, err)

	count, err = s.ArchiveOldTodos(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing left to move")

	n, err := s.ArchivedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestArchiveOldTodosCountsEachRun(t *testing.T) {
	s, c := newTestStore(t)
	ctx := context.Background()

	first, _ := s.AddTodo(ctx, "first")
	_, err := s.ToggleTodo(ctx, first.ID)
	require.NoError(t, err)
	c.t = c.t.Add(ArchiveAfter + time.Hour)
	moved, err := s.ArchiveOldTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	second, _ := s.AddTodo(ctx, "second")
	third, _ := s.AddTodo(ctx, "third")
	_, err = s.ToggleTodo(ctx, second.ID)
	require.NoError(t, err)
	_, err = s.ToggleTodo(ctx, third.ID)
	require.NoError(t, err)
	c.t = c.t.Add(ArchiveAfter + time.Hour)

	moved, err = s.ArchiveOldTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	total, err := s.ArchivedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
