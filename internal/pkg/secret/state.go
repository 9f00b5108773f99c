package secret

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultStateTTL OAuth state 有效期
const DefaultStateTTL = 10 * time.Minute

var (
	ErrStateInvalid = errors.New("invalid state")
	ErrStateExpired = errors.New("state expired")
)

// State OAuth state 中携带的授权上下文
type State struct {
	ClientID string
	Shop     string
}

type stateClaims struct {
	ClientID string `json:"clientId"`
	Shop     string `json:"shop"`
	jwt.RegisteredClaims
}

// StateSigner 签发和校验携带 clientId 与店铺域名的 OAuth state
type StateSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateSigner{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign 生成 state，shop 应为规范化后的店铺域名
func (s *StateSigner) Sign(clientID, shop string) (string, error) {
	issued := s.now()
	claims := stateClaims{
		ClientID: clientID,
		Shop:     shop,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify 校验签名与有效期
func (s *StateSigner) Verify(state string) (State, error) {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return State{}, ErrStateExpired
		}
		return State{}, ErrStateInvalid
	}
	if claims.ClientID == "" || claims.Shop == "" {
		return State{}, ErrStateInvalid
	}
	return State{ClientID: claims.ClientID, Shop: claims.Shop}, nil
}
