package jwt

import (
	"fmt"
	"time"

	"github.com/avelora/salesboard/internal/entity"
	"github.com/go-chi/jwtauth/v5"
)

// NewToken creates a JWT carrying the requester identity the report engine
// scopes visibility by.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, req entity.Requester) (string, error) {
	claims := map[string]interface{}{
		"exp":   time.Now().Add(ttl).Unix(),
		"sub":   req.Email,
		"name":  req.Name,
		"email": req.Email,
		"role":  req.Role,
	}
	if len(req.DelegatedNames) > 0 {
		claims["delegated"] = req.DelegatedNames
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}

// RequesterFromClaims rebuilds the requester identity from verified token
// claims. Name and email are required; role may be absent for plain staff.
func RequesterFromClaims(claims map[string]interface{}) (entity.Requester, error) {
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	if name == "" && email == "" {
		return entity.Requester{}, fmt.Errorf("token carries neither name nor email claim")
	}
	role, _ := claims["role"].(string)

	req := entity.Requester{
		Name:  name,
		Email: email,
		Role:  role,
	}
	// jwx decodes JSON arrays as []interface{}
	if raw, ok := claims["delegated"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" {
				req.DelegatedNames = append(req.DelegatedNames, s)
			}
		}
	}
	return req, nil
}
