package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/segment-insights-api/internal/config"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

const (
	issuer          = "segment-insights-api"
	defaultTokenTTL = 24 * time.Hour
)

//go:generate mockgen -source=service.go -destination=mocks/authenticator.go -package=mocks

type Authenticator interface {
	IssueToken(clientName string, role domain.Role) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken gera um token assinado para um cliente da API
func (s *Service) IssueToken(clientName string, role domain.Role) (string, time.Time, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return "", time.Time{}, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do cliente é obrigatório")
	}

	if !role.Valid() {
		return "", time.Time{}, NewClientAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, clientName, string(role))
	}

	if len(s.secret) == 0 {
		return "", time.Time{}, NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "Defina AUTH_SECRET")
	}

	id, err := utils.GenerateID(utils.TokenIDPrefix)
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador do token")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := domain.Claims{
		ClientName: clientName,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   clientName,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithFields(logrus.Fields{
		"client":     clientName,
		"role":       role,
		"expires_at": expiresAt,
	}).Info("Token emitido")

	return token, expiresAt, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claims inválidas")
	}

	return claims, nil
}
