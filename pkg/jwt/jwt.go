package jwt

import (
    "errors"
    "time"

    jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 登录态声明，sub 为用户 ID
type Claims struct {
    UserID   uint   `json:"uid"`
    Username string `json:"username"`
    Role     string `json:"role"`
    jwtlib.RegisteredClaims
}

// Sign 签发 HS256 token
func Sign(secret string, userID uint, username, role string, expire time.Duration) (string, error) {
    now := time.Now()
    claims := &Claims{
        UserID:   userID,
        Username: username,
        Role:     role,
        RegisteredClaims: jwtlib.RegisteredClaims{
            IssuedAt:  jwtlib.NewNumericDate(now),
            ExpiresAt: jwtlib.NewNumericDate(now.Add(expire)),
        },
    }
    return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse 校验并解析 token
func Parse(secret, tokenString string) (*Claims, error) {
    token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(t *jwtlib.Token) (any, error) {
        if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil {
        return nil, err
    }
    claims, ok := token.Claims.(*Claims)
    if !ok || !token.Valid {
        return nil, ErrInvalidToken
    }
    return claims, nil
}
