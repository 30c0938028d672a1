package jwt

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const userTokenLifetime = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error)
		ValidateTokenForgetPassword(token string) (jwt.MapClaims, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "FOODGRAM",
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	now := time.Now()
	claims := jwtUserClaim{
		UserID: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(userTokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return signed
}

func (j *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.keyFunc)
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	parsed, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwtUserClaim)
	if !ok {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for key, value := range data {
		claims[key] = value
	}
	claims["exp"] = now.Add(duration).Unix()
	claims["iat"] = now.Unix()
	claims["iss"] = j.issuer

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) ValidateTokenForgetPassword(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, j.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
