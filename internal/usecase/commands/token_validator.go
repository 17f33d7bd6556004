package commands

import (
	"wild-oasis-api/internal/pkg/errs"
	"wild-oasis-api/internal/pkg/jwt"
)

var ErrInvalidToken = errs.New("invalid token")

// TokenValidator checks a session token issued by the guest-facing app and
// resolves it to the guest identity.
type TokenValidator interface {
	ValidateToken(token string) (*GuestInfo, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(token string) (*GuestInfo, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	return &GuestInfo{
		ID:    claims.GuestID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
