package auth

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"credo/config"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/service"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtIssuer is a concrete implementation of the TokenIssuer interface using
// RS256-signed JWTs. Access and refresh tokens are signed with separate RSA
// key pairs; the verifying side only ever holds the matching public key, and
// rejects any token whose signing method is not RSA. That closes the usual
// key-confusion hole where an HMAC token signed with the public key bytes
// would otherwise verify.
type jwtIssuer struct {
	accessPrivate  *rsa.PrivateKey
	accessPublic   *rsa.PublicKey
	refreshPrivate *rsa.PrivateKey
	refreshPublic  *rsa.PublicKey
	accessTTL      time.Duration
	refreshTTL     time.Duration
}

// NewJWTIssuer loads the PEM key material named in config and returns the issuer.
// Keys are parsed once at startup and read-only afterwards, so concurrent
// request handling needs no locking around them.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	accessPrivate, err := loadPrivateKey(cfg.JWT.AccessPrivateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load access private key")
	}
	accessPublic, err := loadPublicKey(cfg.JWT.AccessPublicKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load access public key")
	}
	refreshPrivate, err := loadPrivateKey(cfg.JWT.RefreshPrivateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load refresh private key")
	}
	refreshPublic, err := loadPublicKey(cfg.JWT.RefreshPublicKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load refresh public key")
	}

	return NewJWTIssuerFromKeys(accessPrivate, accessPublic, refreshPrivate, refreshPublic, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL), nil
}

// NewJWTIssuerFromKeys builds an issuer from already-parsed keys.
func NewJWTIssuerFromKeys(
	accessPrivate *rsa.PrivateKey,
	accessPublic *rsa.PublicKey,
	refreshPrivate *rsa.PrivateKey,
	refreshPublic *rsa.PublicKey,
	accessTTL, refreshTTL time.Duration,
) service.TokenIssuer {
	return &jwtIssuer{
		accessPrivate:  accessPrivate,
		accessPublic:   accessPublic,
		refreshPrivate: refreshPrivate,
		refreshPublic:  refreshPublic,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token for the given identity.
func (s *jwtIssuer) IssueAccessToken(accountID uuid.UUID, email string) (string, error) {
	return s.sign(accountID, email, tokenTypeAccess, s.accessTTL, s.accessPrivate)
}

// IssueRefreshToken signs a longer-lived refresh token for the given identity.
func (s *jwtIssuer) IssueRefreshToken(accountID uuid.UUID, email string) (string, error) {
	return s.sign(accountID, email, tokenTypeRefresh, s.refreshTTL, s.refreshPrivate)
}

// Refresh verifies the refresh token and mints a new access token with the
// same identity claims. The refresh token is not rotated; a still-valid
// refresh token keeps working until its own expiry.
func (s *jwtIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := s.verify(refreshToken, s.refreshPublic, tokenTypeRefresh)
	if err != nil {
		// Signature, algorithm and expiry failures all collapse to the one
		// forbidden outcome so callers learn nothing about why.
		return "", domainerrors.ErrRefreshForbidden.WrapMessage("refresh token verification failed")
	}

	return s.IssueAccessToken(claims.AccountID, claims.Email)
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *jwtIssuer) VerifyAccessToken(token string) (*service.Claims, error) {
	return s.verify(token, s.accessPublic, tokenTypeAccess)
}

func (s *jwtIssuer) sign(accountID uuid.UUID, email, tokenType string, ttl time.Duration, key *rsa.PrivateKey) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		AccountID: accountID,
		Email:     email,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func (s *jwtIssuer) verify(tokenString string, key *rsa.PublicKey, wantType string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return key, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Type != wantType {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	return claims, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return key, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return key, nil
}
