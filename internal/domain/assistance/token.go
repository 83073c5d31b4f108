package assistance

import (
	"fmt"
	"time"

	vo "zelador/internal/domain/assistance/valueobjects"
)

// Token is one capability secret bound to a request and a purpose. Values
// are opaque high-entropy strings produced by the infrastructure generator;
// the domain only tracks issuance and consumption.
type Token struct {
	id           uint
	assistanceID uint
	purpose      vo.TokenPurpose
	value        string
	issuedAt     time.Time
	consumedAt   *time.Time
}

const minTokenLength = 32

// NewToken creates an active token. The value must carry at least 32
// characters of entropy-bearing material.
func NewToken(assistanceID uint, purpose vo.TokenPurpose, value string, now time.Time) (*Token, error) {
	if !purpose.IsValid() {
		return nil, fmt.Errorf("invalid token purpose")
	}
	if len(value) < minTokenLength {
		return nil, fmt.Errorf("token value must be at least %d characters", minTokenLength)
	}

	return &Token{
		assistanceID: assistanceID,
		purpose:      purpose,
		value:        value,
		issuedAt:     now.UTC(),
	}, nil
}

// ReconstructToken rebuilds a token from persistence.
func ReconstructToken(
	id uint,
	assistanceID uint,
	purpose vo.TokenPurpose,
	value string,
	issuedAt time.Time,
	consumedAt *time.Time,
) (*Token, error) {
	if !purpose.IsValid() {
		return nil, fmt.Errorf("invalid token purpose: %s", purpose)
	}
	return &Token{
		id:           id,
		assistanceID: assistanceID,
		purpose:      purpose,
		value:        value,
		issuedAt:     issuedAt,
		consumedAt:   consumedAt,
	}, nil
}

func (t *Token) ID() uint                 { return t.id }
func (t *Token) AssistanceID() uint       { return t.assistanceID }
func (t *Token) Purpose() vo.TokenPurpose { return t.purpose }
func (t *Token) Value() string            { return t.value }
func (t *Token) IssuedAt() time.Time      { return t.issuedAt }
func (t *Token) ConsumedAt() *time.Time   { return t.consumedAt }

func (t *Token) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	t.id = id
	return nil
}

// IsActive reports whether the token still resolves.
func (t *Token) IsActive() bool {
	return t.consumedAt == nil
}

// Consume invalidates the token immediately; there is no grace period.
func (t *Token) Consume(now time.Time) {
	if t.consumedAt == nil {
		consumed := now.UTC()
		t.consumedAt = &consumed
	}
}

// Token management on the aggregate. One active token per purpose; issuing a
// replacement consumes the previous one.

// IssueToken installs a fresh token for a purpose, consuming any active
// predecessor. Returns the replaced token (already consumed) when present so
// the repository can persist the invalidation.
func (a *Assistance) IssueToken(purpose vo.TokenPurpose, value string, now time.Time) (issued *Token, replaced *Token, err error) {
	token, err := NewToken(a.id, purpose, value, now)
	if err != nil {
		return nil, nil, err
	}

	if prev, ok := a.tokens[purpose]; ok && prev.IsActive() {
		prev.Consume(now)
		replaced = prev
	}

	a.tokens[purpose] = token
	return token, replaced, nil
}

// AttachToken is used by the repository when reconstructing.
func (a *Assistance) AttachToken(t *Token) {
	if t == nil {
		return
	}
	a.tokens[t.purpose] = t
}

// TokenFor returns the active token for a purpose, or nil.
func (a *Assistance) TokenFor(purpose vo.TokenPurpose) *Token {
	t, ok := a.tokens[purpose]
	if !ok || !t.IsActive() {
		return nil
	}
	return t
}

// Tokens returns the current token set, one per purpose.
func (a *Assistance) Tokens() []*Token {
	tokens := make([]*Token, 0, len(a.tokens))
	for _, purpose := range vo.AllTokenPurposes {
		if t, ok := a.tokens[purpose]; ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// RevokeAllTokens consumes every active token. Used on reassignment so the
// previous supplier's links stop resolving at once.
func (a *Assistance) RevokeAllTokens(now time.Time) []*Token {
	revoked := make([]*Token, 0, len(a.tokens))
	for _, t := range a.tokens {
		if t.IsActive() {
			t.Consume(now)
			revoked = append(revoked, t)
		}
	}
	return revoked
}
