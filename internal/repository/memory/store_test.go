package memory

import (
	"context"
	"testing"

	"kampuskitap/internal/model"
	"kampuskitap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PriceOverColumnLimitRejected(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	owner := &model.User{Username: "ayse", Email: "ayse@kampus.edu.tr", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, owner))

	in := model.ProductInput{Title: "Calculus", Price: model.MaxPrice, CategoryID: 1}
	p, err := store.Products().Create(ctx, owner.ID, in)
	require.NoError(t, err)

	in.Price = model.MaxPrice + 1
	_, err = store.Products().Create(ctx, owner.ID, in)
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	_, err = store.Products().Update(ctx, p.ID, owner.ID, in)
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	got, err := store.Products().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MaxPrice, got.Price)
	assert.Equal(t, 2, store.Writes())
}

func TestStore_UpdateByNonOwnerIsNoop(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	alice := &model.User{Username: "alice", Email: "alice@kampus.edu.tr", PasswordHash: "x"}
	bob := &model.User{Username: "bob", Email: "bob@kampus.edu.tr", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, alice))
	require.NoError(t, store.Users().Create(ctx, bob))

	p, err := store.Products().Create(ctx, alice.ID, model.ProductInput{Title: "Roman", Price: 10, CategoryID: 2})
	require.NoError(t, err)

	updated, err := store.Products().Update(ctx, p.ID, bob.ID, model.ProductInput{Title: "x", Price: 1e12, CategoryID: 2})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}
