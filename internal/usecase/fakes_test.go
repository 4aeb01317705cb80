package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = user

	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	return user, nil
}

// fakeResetCodeRepo is an in-memory ResetCodeRepository. ConsumeCode holds
// the lock across match and mark, mirroring the store's conditional update.
type fakeResetCodeRepo struct {
	mu    sync.Mutex
	codes []*model.PasswordResetCode
}

func newFakeResetCodeRepo() *fakeResetCodeRepo {
	return &fakeResetCodeRepo{}
}

func (r *fakeResetCodeRepo) CreateCode(
	_ context.Context,
	code *model.PasswordResetCode,
) (*model.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code.ID = bson.NewObjectID()
	now := time.Now()
	code.CreatedAt = now
	code.UpdatedAt = now
	code.Used = false
	r.codes = append(r.codes, code)

	return code, nil
}

func (r *fakeResetCodeRepo) ConsumeCode(
	_ context.Context,
	email, code string,
) (*model.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.codes {
		if stored.Email == email && stored.Code == code && !stored.Used && stored.ExpiresAt.After(time.Now()) {
			stored.Used = true
			stored.UpdatedAt = time.Now()
			return stored, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeResetCodeRepo) InvalidateUserCodes(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.codes {
		if stored.UserID.Hex() == userID && !stored.Used {
			stored.Used = true
		}
	}

	return nil
}

func (r *fakeResetCodeRepo) unusedCodesFor(email string) []*model.PasswordResetCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.PasswordResetCode
	for _, stored := range r.codes {
		if stored.Email == email && !stored.Used {
			out = append(out, stored)
		}
	}

	return out
}

// fakeMailer records outbound mail and can be made to fail.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (m *fakeMailer) SendSimple(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
