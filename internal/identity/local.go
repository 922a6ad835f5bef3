package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// LocalProvider implementa Provider com contas próprias (bcrypt) e
// sessões JWT HS256, no lugar do serviço de identidade hospedado.
type LocalProvider struct {
	db     *gorm.DB
	secret string

	mu          sync.Mutex
	subscribers []func(AuthEvent, *Session)
}

func NewLocalProvider(db *gorm.DB, secret string) *LocalProvider {
	return &LocalProvider{db: db, secret: secret}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account models.IdentityAccount
	if err := p.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sess := &Session{AccountID: account.ID, Email: account.Email}

	token, err := p.generateToken(&account, "session", 24*time.Hour)
	if err != nil {
		return nil, "", err
	}

	p.emit(EventSignedIn, sess)
	return sess, token, nil
}

// SignOut é stateless: o token simplesmente deixa de ser usado.
// O evento ainda é emitido para os ouvintes limparem estado local.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	sess, _ := p.SessionFromToken(token)
	p.emit(EventSignedOut, sess)
	return nil
}

func (p *LocalProvider) SessionFromToken(tokenString string) (*Session, error) {
	claims, err := p.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	purpose, _ := claims["purpose"].(string)
	if purpose != "session" {
		return nil, ErrInvalidToken
	}

	sub, ok1 := claims["sub"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, ErrInvalidToken
	}

	return &Session{AccountID: sub, Email: email}, nil
}

func (p *LocalProvider) SessionFromRecoveryToken(tokenString string) (*Session, error) {
	claims, err := p.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	purpose, _ := claims["purpose"].(string)
	if purpose != "recovery" {
		return nil, ErrInvalidToken
	}

	sub, ok1 := claims["sub"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, ErrInvalidToken
	}

	return &Session{AccountID: sub, Email: email}, nil
}

func (p *LocalProvider) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account models.IdentityAccount
	if err := p.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	token, err := p.generateToken(&account, "recovery", time.Hour)
	if err != nil {
		return "", err
	}

	p.emit(EventPasswordRecovery, &Session{AccountID: account.ID, Email: account.Email})
	return token, nil
}

func (p *LocalProvider) UpdatePassword(ctx context.Context, accountID, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := p.db.WithContext(ctx).
		Model(&models.IdentityAccount{}).
		Where("id = ?", accountID).
		Update("password_hash", string(hashed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (p *LocalProvider) Subscribe(fn func(AuthEvent, *Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

func (p *LocalProvider) emit(event AuthEvent, sess *Session) {
	p.mu.Lock()
	subs := make([]func(AuthEvent, *Session), len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(event, sess)
	}
}

// --------- JWT ---------

func (p *LocalProvider) generateToken(account *models.IdentityAccount, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     account.ID,
		"email":   account.Email,
		"purpose": purpose,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.secret))
}

func (p *LocalProvider) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(p.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// --------- Cliente de cadastro (privilégio limitado) ---------

// LocalSignUpClient só sabe criar contas; é a instância separada que o
// provisionamento usa, espelhando o segundo cliente de escopo restrito
// do provedor hospedado.
type LocalSignUpClient struct {
	db *gorm.DB
}

func NewLocalSignUpClient(db *gorm.DB) *LocalSignUpClient {
	return &LocalSignUpClient{db: db}
}

func (c *LocalSignUpClient) SignUp(ctx context.Context, email, password string) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := models.IdentityAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := c.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &Account{ID: account.ID, Email: account.Email}, nil
}
