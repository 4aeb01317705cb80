package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/shared/security"
)

func newResetFixture(t *testing.T) (*fakeUserRepo, *fakeResetCodeRepo, *fakeMailer, PasswordResetUsecase, *model.User) {
	t.Helper()

	userRepo := newFakeUserRepo()
	codeRepo := newFakeResetCodeRepo()
	mail := &fakeMailer{}

	hash, err := security.HashPassword("old password")
	require.NoError(t, err)

	user, err := userRepo.CreateUser(context.Background(), &model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	u := NewPasswordResetUsecase(userRepo, codeRepo, mail, 15*time.Minute)

	return userRepo, codeRepo, mail, u, user
}

func TestGenerateResetCode_Format(t *testing.T) {
	t.Parallel()

	format := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 500; i++ {
		code, err := generateResetCode()
		require.NoError(t, err)
		require.True(t, format.MatchString(code), "code %q is not 6 digits", code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	_, codeRepo, mail, u, _ := newResetFixture(t)

	err := u.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)

	assert.Empty(t, codeRepo.codes)
	assert.Empty(t, mail.sent)
}

func TestRequestPasswordReset_KnownEmail(t *testing.T) {
	t.Parallel()

	_, codeRepo, mail, u, user := newResetFixture(t)

	err := u.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)

	outstanding := codeRepo.unusedCodesFor(user.Email)
	require.Len(t, outstanding, 1)
	assert.Regexp(t, `^\d{6}$`, outstanding[0].Code)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{user.Email}, mail.sent[0].to)
	assert.Contains(t, mail.sent[0].body, outstanding[0].Code)
}

func TestRequestPasswordReset_SupersedesPreviousCode(t *testing.T) {
	t.Parallel()

	_, codeRepo, _, u, user := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), user.Email))
	require.NoError(t, u.RequestPasswordReset(context.Background(), user.Email))

	// Only the latest code is redeemable.
	assert.Len(t, codeRepo.unusedCodesFor(user.Email), 1)
	assert.Len(t, codeRepo.codes, 2)
}

func TestRequestPasswordReset_MailFailure(t *testing.T) {
	t.Parallel()

	_, _, mail, u, user := newResetFixture(t)
	mail.failWith = errors.New("smtp unreachable")

	err := u.RequestPasswordReset(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrMailUnavailable)
}

func TestResetPassword_SingleUse(t *testing.T) {
	t.Parallel()

	userRepo, codeRepo, _, u, user := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), user.Email))
	code := codeRepo.unusedCodesFor(user.Email)[0].Code

	err := u.ResetPassword(context.Background(), user.Email, code, "brand new password")
	require.NoError(t, err)

	updated, err := userRepo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)

	ok, err := security.VerifyPassword("brand new password", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second redemption of the same code must fail.
	err = u.ResetPassword(context.Background(), user.Email, code, "yet another password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPassword_WrongCode(t *testing.T) {
	t.Parallel()

	_, _, _, u, user := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), user.Email))

	err := u.ResetPassword(context.Background(), user.Email, "000000", "brand new password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	t.Parallel()

	_, codeRepo, _, u, user := newResetFixture(t)

	_, err := codeRepo.CreateCode(context.Background(), &model.PasswordResetCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	err = u.ResetPassword(context.Background(), user.Email, "123456", "brand new password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPassword_ConcurrentRedemption(t *testing.T) {
	t.Parallel()

	_, codeRepo, _, u, user := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), user.Email))
	code := codeRepo.unusedCodesFor(user.Email)[0].Code

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = u.ResetPassword(context.Background(), user.Email, code, "concurrent password")
		}(i)
	}
	wg.Wait()

	var successes, invalid int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInvalidResetCode):
			invalid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one redemption must win")
	assert.Equal(t, 1, invalid)
}
