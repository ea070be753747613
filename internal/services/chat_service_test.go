package services

import (
	"context"
	"testing"

	"barterhub/internal/domain/chat"
	barter_errors "barterhub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatEnsure_IdempotentForPair(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	first, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	// Same pair in reversed order maps to the same row.
	second, err := e.repos.Chats.Ensure(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, e.db.Model(&chat.Chat{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChatEnsure_ReactivatesArchived(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	c, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, e.chats.Archive(context.Background(), c.ID, alice.ID))
	archived, err := e.repos.Chats.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, chat.StatusArchived, archived.Status)

	again, err := e.repos.Chats.Ensure(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
	assert.Equal(t, chat.StatusActive, again.Status)
}

func TestChatArchive_ParticipantsOnly(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")

	c, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	err = e.chats.Archive(context.Background(), c.ID, carol.ID)
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)
}

func TestChatMessages_SendAndList(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	c, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	m1, err := e.chats.SendMessage(context.Background(), c.ID, alice.ID, "still interested?")
	require.NoError(t, err)
	m2, err := e.chats.SendMessage(context.Background(), c.ID, bob.ID, "  yes, when can we meet?  ")
	require.NoError(t, err)
	assert.Equal(t, "yes, when can we meet?", m2.Text)

	messages, total, err := e.chats.ListMessages(context.Background(), c.ID, alice.ID, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, messages, 2)
	assert.Equal(t, m1.ID, messages[0].ID)
	assert.Equal(t, m2.ID, messages[1].ID)
}

func TestChatMessages_EmptyTextRejected(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	c, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = e.chats.SendMessage(context.Background(), c.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, barter_errors.ErrInvalidInput)
}

func TestChatMessages_OutsiderRejected(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")

	c, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = e.chats.SendMessage(context.Background(), c.ID, carol.ID, "hello")
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)

	_, _, err = e.chats.ListMessages(context.Background(), c.ID, carol.ID, 1, 50)
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)
}

func TestChatListForUser_OnlyOwnChats(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")

	c1, err := e.repos.Chats.Ensure(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = e.repos.Chats.Ensure(context.Background(), bob.ID, carol.ID)
	require.NoError(t, err)

	chats, err := e.chats.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, c1.ID, chats[0].ID)

	chats, err = e.chats.ListForUser(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}
