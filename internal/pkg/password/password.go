package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for every stored credential.
const Cost = 10

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil when plain matches hash and bcrypt.ErrMismatchedHashAndPassword otherwise.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
