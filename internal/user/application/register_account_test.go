package application

import (
	"context"
	"testing"

	"github.com/dkoroteev/yeticave/internal/user/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountRepo struct {
	saved *domain.NewAccount
	err   error
}

func (f *fakeAccountRepo) Register(_ context.Context, account domain.NewAccount) (int64, error) {
	f.saved = &account
	if f.err != nil {
		return 0, f.err
	}
	return 11, nil
}

func (f *fakeAccountRepo) FindByEmail(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func TestRegisterAccountUseCase_Execute(t *testing.T) {
	t.Parallel()

	t.Run("password_is_hashed_one_way", func(t *testing.T) {
		t.Parallel()
		repo := &fakeAccountRepo{}
		uc := NewRegisterAccountUseCase(repo)

		id, err := uc.Execute(context.Background(), RegisterAccountDTO{
			Email:    "anna@example.com",
			Name:     "Anna",
			Password: "s3cret-pass",
			Contacts: "+7 900 000-00-00",
		})
		require.NoError(t, err)
		require.Equal(t, int64(11), id)
		require.NotNil(t, repo.saved)
		require.NotEqual(t, "s3cret-pass", repo.saved.Password)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.saved.Password), []byte("s3cret-pass")))
	})

	t.Run("markup_is_stripped_from_free_text", func(t *testing.T) {
		t.Parallel()
		repo := &fakeAccountRepo{}
		uc := NewRegisterAccountUseCase(repo)

		_, err := uc.Execute(context.Background(), RegisterAccountDTO{
			Email:    "boris@example.com",
			Name:     "<script>alert(1)</script>Boris",
			Password: "pw",
			Contacts: "<b>call me</b> evenings",
		})
		require.NoError(t, err)
		require.NotContains(t, repo.saved.Name, "<")
		require.NotContains(t, repo.saved.Contacts, "<")
		require.Contains(t, repo.saved.Name, "Boris")
		require.Contains(t, repo.saved.Contacts, "call me")
	})

	t.Run("storage_failure_propagates", func(t *testing.T) {
		t.Parallel()
		repo := &fakeAccountRepo{err: domain.ErrEmailTaken}
		uc := NewRegisterAccountUseCase(repo)

		_, err := uc.Execute(context.Background(), RegisterAccountDTO{
			Email:    "taken@example.com",
			Password: "pw",
		})
		require.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}
