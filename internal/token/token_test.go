package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

func testUser() *model.User {
	return &model.User{Email: "driver@example.com", Role: model.RoleUser}
}

func TestManager_IssueAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	assert.NoError(t, m.Validate(tok, "driver@example.com"))
}

func TestManager_Validate_SubjectMismatch(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue(testUser())
	require.NoError(t, err)

	assert.ErrorIs(t, m.Validate(tok, "someone-else@example.com"), ErrSubjectMismatch)
}

func TestManager_Validate_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	tok, err := m.Issue(testUser())
	require.NoError(t, err)

	assert.ErrorIs(t, m.Validate(tok, "driver@example.com"), ErrInvalidToken)
}

func TestManager_Validate_Tampered(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	tok, err := other.Issue(testUser())
	require.NoError(t, err)

	assert.ErrorIs(t, m.Validate(tok, "driver@example.com"), ErrInvalidToken)
	assert.ErrorIs(t, m.Validate(tok+"x", "driver@example.com"), ErrInvalidToken)
	assert.ErrorIs(t, m.Validate("not-a-token", "driver@example.com"), ErrInvalidToken)
}

func TestManager_ExtractSubject(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	// Extraction works even on an expired token; it is only the first-pass
	// lookup, full validation still fails.
	tok, err := m.Issue(testUser())
	require.NoError(t, err)

	subject, err := m.ExtractSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, "driver@example.com", subject)
}

func TestManager_ExtractSubject_Missing(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ExtractSubject(noSubject)
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = m.ExtractSubject("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
