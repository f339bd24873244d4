package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewToken(jwtAuth, time.Hour, entity.Requester{
		Name:           "An Nguyen",
		Email:          "an@avelora.io",
		Role:           "manager",
		DelegatedNames: []string{"Binh", "Chi"},
	})
	require.NoError(t, err)

	parsed, err := jwtauth.VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)

	req, err := RequesterFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "An Nguyen", req.Name)
	assert.Equal(t, "an@avelora.io", req.Email)
	assert.Equal(t, "manager", req.Role)
	assert.Equal(t, []string{"Binh", "Chi"}, req.DelegatedNames)
}

func TestRequesterFromClaimsMissingIdentity(t *testing.T) {
	_, err := RequesterFromClaims(map[string]interface{}{"role": "admin"})
	assert.Error(t, err)
}

func TestRequesterFromClaimsNoDelegation(t *testing.T) {
	req, err := RequesterFromClaims(map[string]interface{}{
		"name":  "An",
		"email": "an@avelora.io",
	})
	require.NoError(t, err)
	assert.Empty(t, req.DelegatedNames)
	assert.Empty(t, req.Role)
}
