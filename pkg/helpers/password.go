package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordComparer abstracts the stored-credential scheme. The services
// treat hashing and comparison as opaque; production wiring uses bcrypt,
// tests may substitute plain equality.
type PasswordComparer interface {
	Hash(plain string) (string, error)
	Compare(stored, plain string) bool
}

// BcryptComparer hashes and compares with bcrypt at the default cost.
type BcryptComparer struct{}

func (BcryptComparer) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptComparer) Compare(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
