package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/canteen/internal/models"
)

const testSecret = "test_secret_key_1234567890"

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	issued := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(testSecret, tokenTTL, fixedNow(issued))

	tests := []struct {
		name    string
		profile models.Profile
	}{
		{
			name:    "admin",
			profile: models.Profile{ID: "p-1", Email: "chef@canteen.test", Role: models.RoleAdmin},
		},
		{
			name:    "employee",
			profile: models.Profile{ID: "p-2", Email: "anna@canteen.test", Role: models.RoleEmployee},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, issuedClaims, err := maker.GenerateToken(&tt.profile)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.NotEmpty(t, issuedClaims.ID)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.profile.ID, claims.UserID())
			assert.Equal(t, tt.profile.Email, claims.Email)
			assert.Equal(t, string(tt.profile.Role), claims.Role)
			assert.Equal(t, issuedClaims.ID, claims.ID)
			assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
			assert.Equal(t, issued.Add(tokenTTL), claims.ExpiresAt.Time.UTC())

			identity := claims.Identity()
			assert.Equal(t, tt.profile.ID, identity.UserID)
			assert.Equal(t, tt.profile.Role, identity.Role)
			assert.Equal(t, claims.ID, identity.TokenID)
		})
	}
}

func TestJWTMaker_UniqueTokenIDs(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour, nil)
	profile := &models.Profile{ID: "p-1", Email: "anna@canteen.test", Role: models.RoleEmployee}

	_, first, err := maker.GenerateToken(profile)
	require.NoError(t, err)
	_, second, err := maker.GenerateToken(profile)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute, nil)
	profile := &models.Profile{ID: "p-1", Email: "anna@canteen.test", Role: models.RoleEmployee}

	validToken, _, err := maker.GenerateToken(profile)
	require.NoError(t, err)

	expired, _, err := NewJWTMaker(testSecret, -time.Hour, nil).GenerateToken(profile)
	require.NoError(t, err)

	wrongSecret, _, err := NewJWTMaker("wrong_secret_key", 15*time.Minute, nil).GenerateToken(profile)
	require.NoError(t, err)

	noneSigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "p-1",
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expired},
		{name: "wrong secret key", token: wrongSecret},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "alg none", token: noneSigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	maker := NewJWTMaker(testSecret, time.Minute, clock)

	token, _, err := maker.GenerateToken(&models.Profile{ID: "p-1", Role: models.RoleEmployee})
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
