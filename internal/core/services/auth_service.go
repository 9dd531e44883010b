package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/platform/config"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils"
)

// operatorSubject is the JWT subject of the single operator account.
const operatorSubject = "operator"

// authService verifies the operator PIN and issues session tokens. The app
// is single-user, so there is no user store behind it.
type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) LoginWithPin(ctx context.Context, pin string) (*dto.LoginResponse, error) {
	if !s.pinMatches(pin) {
		s.LogInfo(ctx, "login rejected: wrong pin")
		return nil, fmt.Errorf("wrong pin: %w", apperrors.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(operatorSubject, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.LogInfo(ctx, "operator logged in")
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) pinMatches(pin string) bool {
	if s.cfg.AdminPinHash != "" {
		return utils.CheckPinHash(pin, s.cfg.AdminPinHash)
	}
	if s.cfg.AdminPin != "" {
		return subtle.ConstantTimeCompare([]byte(pin), []byte(s.cfg.AdminPin)) == 1
	}
	return false
}
