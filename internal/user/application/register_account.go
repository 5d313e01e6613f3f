package application

import (
	"context"
	"fmt"

	"github.com/dkoroteev/yeticave/internal/shared/logger"
	"github.com/dkoroteev/yeticave/internal/user/domain"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var log = logger.GetLogger()

// RegisterAccountDTO is the raw registration input as the caller hands
// it over: plaintext password, free text possibly carrying markup.
type RegisterAccountDTO struct {
	Email    string
	Name     string
	Password string
	Contacts string
}

// RegisterAccountUseCase hashes the password one-way and strips any
// markup from the free-text fields before the account is stored.
type RegisterAccountUseCase struct {
	accounts domain.AccountRepository
	strip    *bluemonday.Policy
}

// NewRegisterAccountUseCase creates a new instance of RegisterAccountUseCase.
func NewRegisterAccountUseCase(accounts domain.AccountRepository) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accounts: accounts,
		strip:    bluemonday.StrictPolicy(),
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountDTO) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("register account: failed to hash password: %w", err)
	}

	account := domain.NewAccount{
		Email:    uc.strip.Sanitize(cmd.Email),
		Name:     uc.strip.Sanitize(cmd.Name),
		Password: string(hash),
		Contacts: uc.strip.Sanitize(cmd.Contacts),
	}

	id, err := uc.accounts.Register(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("register account: %w", err)
	}

	log.Info("Account registered",
		zap.Int64("accountID", id),
		zap.String("email", account.Email),
	)
	return id, nil
}
