package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritchanat/dormdesk/internal/user"
)

func TestTokensIssueVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	tenantID := uuid.New()
	u := &user.User{
		ID:       uuid.New(),
		Email:    "somchai@example.com",
		Role:     user.RoleTenant,
		TenantID: &tenantID,
	}

	tokenString, err := tokens.Issue(u)
	require.NoError(t, err)

	claims, err := tokens.Verify(tokenString)
	require.NoError(t, err)

	assert.Equal(t, user.RoleTenant, claims.Role)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, tenantID, *claims.TenantID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestTokensVerifyWrongSecret(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	tokenString, err := tokens.Issue(&user.User{ID: uuid.New(), Role: user.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokens("other-secret", time.Hour).Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensVerifyExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	tokenString, err := tokens.Issue(&user.User{ID: uuid.New(), Role: user.RoleStaff})
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensVerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
