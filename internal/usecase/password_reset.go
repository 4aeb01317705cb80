package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
	"github.com/nontawatz/mini-commerce-api/shared/security"
)

// PasswordResetUsecase defines the business logic for OTP based password resets.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given
	// email. It succeeds whether or not an account exists, so callers cannot
	// probe for registered addresses.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a reset code and replaces the account's password.
	// A code can be redeemed at most once.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// MailSender delivers the reset code out of band.
type MailSender interface {
	SendSimple(to []string, subject, body string) error
}

var (
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	ErrMailUnavailable  = errors.New("mail delivery failed")
)

type passwordResetUsecase struct {
	userRepo      repository.UserRepository
	resetCodeRepo repository.ResetCodeRepository
	mail          MailSender
	codeExpiresIn time.Duration
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	resetCodeRepo repository.ResetCodeRepository,
	mail MailSender,
	codeExpiresIn time.Duration,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:      userRepo,
		resetCodeRepo: resetCodeRepo,
		mail:          mail,
		codeExpiresIn: codeExpiresIn,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return nil
		}
		return err
	}

	// A new request supersedes any outstanding code for this account.
	if err := u.resetCodeRepo.InvalidateUserCodes(ctx, user.ID.Hex()); err != nil {
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	resetCode := &model.PasswordResetCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		Used:      false,
		ExpiresAt: time.Now().Add(u.codeExpiresIn),
	}

	if _, err := u.resetCodeRepo.CreateCode(ctx, resetCode); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"We received a request to reset the password for your account.\n\n"+
			"Your reset code: %s\n\n"+
			"This code expires in %s. If you did not request a password reset, you can ignore this email.",
		code, u.codeExpiresIn,
	)

	if err := u.mail.SendSimple([]string{user.Email}, "Password Reset Code", body); err != nil {
		return fmt.Errorf("%w: %w", ErrMailUnavailable, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	resetCode, err := u.resetCodeRepo.ConsumeCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidResetCode
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, resetCode.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}

// generateResetCode returns a uniformly random 6 digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
