package user_test

import (
	"context"
	"testing"

	userRepo "skytrip/database/repository/user"
	"skytrip/models"
	"skytrip/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo keeps users in a map and snapshots card arrays on write, the
// same whole-array semantics the Mongo store uses.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copied := *u
	copied.SavedCards = append([]models.SavedCreditCard(nil), u.SavedCards...)
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id, name, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.Name = name
	u.Phone = phone
	return nil
}

func (r *fakeUserRepo) ReplaceCards(ctx context.Context, id string, cards []models.SavedCreditCard) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.SavedCards = append([]models.SavedCreditCard(nil), cards...)
	return nil
}

func defaultCount(cards []models.SavedCreditCard) int {
	n := 0
	for _, c := range cards {
		if c.IsDefault {
			n++
		}
	}
	return n
}

func defaultCardID(t *testing.T, cards []models.SavedCreditCard) string {
	t.Helper()
	for _, c := range cards {
		if c.IsDefault {
			return c.ID
		}
	}
	t.Fatal("no default card")
	return ""
}

func cardInput(holder, number string) user.AddCardInput {
	return user.AddCardInput{
		HolderName: holder,
		CardNumber: number,
		ExpMonth:   6,
		ExpYear:    2029,
	}
}

func TestAddCardFirstBecomesDefault(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "a@example.com"})
	svc := &user.DefaultUserService{Repo: repo}

	u, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)
	require.Len(t, u.SavedCards, 1)
	assert.True(t, u.SavedCards[0].IsDefault)
	assert.Equal(t, "1111", u.SavedCards[0].Last4)
	assert.Equal(t, models.CardNetworkVisa, u.SavedCards[0].Network)
}

func TestAddCardMakeDefaultDemotesExisting(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	_, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)

	input := cardInput("Ada Muster", "5500 0000 0000 0004")
	input.MakeDefault = true
	u, err := svc.AddCard(context.Background(), "u1", input)
	require.NoError(t, err)

	require.Len(t, u.SavedCards, 2)
	assert.Equal(t, 1, defaultCount(u.SavedCards))
	assert.Equal(t, models.CardNetworkMastercard, u.SavedCards[1].Network)
	assert.Equal(t, u.SavedCards[1].ID, defaultCardID(t, u.SavedCards))
}

func TestAddCardCapsAtThree(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	numbers := []string{
		"4111 1111 1111 1111",
		"5500 0000 0000 0004",
		"3400 000000 00009",
	}
	for _, n := range numbers {
		_, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", n))
		require.NoError(t, err)
	}

	_, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4222 2222 2222 2220"))
	assert.ErrorIs(t, err, user.ErrTooManyCards)

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, u.SavedCards, 3)
	assert.Equal(t, 1, defaultCount(u.SavedCards))
}

func TestRemoveDefaultCardPromotesAnother(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	first, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)
	_, err = svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "5500 0000 0000 0004"))
	require.NoError(t, err)

	u, err := svc.RemoveCard(context.Background(), "u1", first.SavedCards[0].ID)
	require.NoError(t, err)

	require.Len(t, u.SavedCards, 1)
	assert.Equal(t, 1, defaultCount(u.SavedCards))
}

func TestRemoveLastCardLeavesEmptyProfile(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	added, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)

	u, err := svc.RemoveCard(context.Background(), "u1", added.SavedCards[0].ID)
	require.NoError(t, err)
	assert.Empty(t, u.SavedCards)
}

func TestRemoveCardUnknownID(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	_, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)

	_, err = svc.RemoveCard(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, user.ErrCardNotFound)
}

func TestSetDefaultCardMovesFlag(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	_, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)
	second, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "5500 0000 0000 0004"))
	require.NoError(t, err)

	target := second.SavedCards[1].ID
	u, err := svc.SetDefaultCard(context.Background(), "u1", target)
	require.NoError(t, err)

	assert.Equal(t, 1, defaultCount(u.SavedCards))
	assert.Equal(t, target, defaultCardID(t, u.SavedCards))

	_, err = svc.SetDefaultCard(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, user.ErrCardNotFound)
}

func TestCardInvariantHoldsUnderMixedSequence(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &user.DefaultUserService{Repo: repo}

	a, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "4111 1111 1111 1111"))
	require.NoError(t, err)
	aID := a.SavedCards[0].ID

	in := cardInput("Ada Muster", "5500 0000 0000 0004")
	in.MakeDefault = true
	b, err := svc.AddCard(context.Background(), "u1", in)
	require.NoError(t, err)
	bID := b.SavedCards[1].ID

	c, err := svc.AddCard(context.Background(), "u1", cardInput("Ada Muster", "3400 000000 00009"))
	require.NoError(t, err)
	assert.Equal(t, bID, defaultCardID(t, c.SavedCards))

	u, err := svc.RemoveCard(context.Background(), "u1", bID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaultCount(u.SavedCards))

	u, err = svc.SetDefaultCard(context.Background(), "u1", aID)
	require.NoError(t, err)
	assert.Equal(t, aID, defaultCardID(t, u.SavedCards))
	assert.Equal(t, 1, defaultCount(u.SavedCards))
}
