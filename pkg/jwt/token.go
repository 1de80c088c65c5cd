package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AgentSecretEnv = "AGENT_TOKEN_SECRET"
	agentLocalsKey = "agent_id"
)

// Sign issues an HS256 token carrying data, signed with the secret held in
// secretEnvKey.
func Sign(data map[string]interface{}, expiresIn time.Duration, secretEnvKey string) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", secretEnvKey)
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	for k, v := range data {
		claims[k] = v
	}

	logrus.WithField("claims", claims).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := to.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return token, expiredAt, nil
}

// VerifyTokenHeader validates the bearer token of the request. Browser
// websocket clients cannot set headers, so a "token" query parameter is
// accepted as well.
func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	accessToken := c.Query("token")
	if header := c.Get("Authorization"); header != "" {
		parts := strings.Split(header, "Bearer ")
		if len(parts) != 2 {
			log.WithField("header_parts", len(parts)).Error("Invalid Authorization format")
			return nil, errors.New("invalid Authorization format")
		}
		accessToken = strings.TrimSpace(parts[1])
	}

	if accessToken == "" {
		log.Error("Empty token")
		return nil, errors.New("empty token")
	}

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		log.WithField("env", secretEnvKey).Error("Token secret environment variable not set")
		return nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.WithField("method", token.Header["alg"]).Error("Unexpected signing method")
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to parse JWT token")
		return nil, err
	}

	log.Debug("Token successfully verified")
	return token, nil
}

// SetAgentID stores the verified agent identity for later handlers.
func SetAgentID(c *fiber.Ctx, token *jwt.Token) {
	id := ""
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		id, _ = claims["sub"].(string)
	}
	c.Locals(agentLocalsKey, id)
}

func GetAgentID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(agentLocalsKey).(string)
	return id, ok && id != ""
}
