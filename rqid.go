package ecpay

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var alphabetSize = big.NewInt(int64(len(alphanumeric)))

// RandomString returns n symbols drawn uniformly from [0-9a-zA-Z].
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("random string: %w", err)
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out), nil
}

// NewRqID builds a request id from t:
// seconds, 5 random symbols, "0" plus the fraction in 8 digits, 5 random symbols.
func NewRqID(t time.Time) (string, error) {
	head, err := RandomString(5)
	if err != nil {
		return "", err
	}
	tail, err := RandomString(5)
	if err != nil {
		return "", err
	}
	fraction := fmt.Sprintf("0%08d", t.Nanosecond()/1000*100)
	return strconv.FormatInt(t.Unix(), 10) + head + fraction + tail, nil
}
