package utils

import "golang.org/x/crypto/bcrypt"

// DefaultCost is used when no BCRYPT_COST is configured.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns bcrypt hash using the given cost.  Costs outside
// bcrypt's accepted range fall back to DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
