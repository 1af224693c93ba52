package cargo

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"cargo/internal/pkg/errs"
)

const (
	CodeLength = 6
	CodeMin    = 100000
	CodeMax    = 999999
)

// VerificationCode is the one-time code a driver presents to confirm delivery.
// It is always six ASCII digits without a leading zero.
type VerificationCode struct {
	value string
}

// NewVerificationCode restores a code from its textual form.
func NewVerificationCode(value string) (VerificationCode, error) {
	if len(value) != CodeLength {
		return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(
			"verification code", fmt.Errorf("must be %d digits", CodeLength))
	}
	for i := range len(value) {
		if value[i] < '0' || value[i] > '9' {
			return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(
				"verification code", errors.New("must contain digits only"))
		}
	}
	if value[0] == '0' {
		return VerificationCode{}, errs.NewValueIsOutOfRangeError("verification code", value, CodeMin, CodeMax)
	}
	return VerificationCode{value: value}, nil
}

func (c VerificationCode) String() string {
	return c.value
}

func (c VerificationCode) IsZero() bool {
	return c.value == ""
}

// Matches compares the presented code with exact string equality in constant time.
func (c VerificationCode) Matches(presented string) bool {
	if c.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(presented)) == 1
}

// CodeGenerator issues a fresh verification code for every successful take.
type CodeGenerator interface {
	Generate() (VerificationCode, error)
}

// RandomCodeGenerator draws codes uniformly from [CodeMin, CodeMax] using a
// cryptographically secure source.
type RandomCodeGenerator struct {
	source io.Reader
}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{source: rand.Reader}
}

// NewRandomCodeGeneratorFrom reads randomness from source instead of crypto/rand.
func NewRandomCodeGeneratorFrom(source io.Reader) *RandomCodeGenerator {
	return &RandomCodeGenerator{source: source}
}

func (g *RandomCodeGenerator) Generate() (VerificationCode, error) {
	source := g.source
	if source == nil {
		source = rand.Reader
	}

	n, err := rand.Int(source, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return VerificationCode{}, fmt.Errorf("generate verification code: %w", err)
	}

	return VerificationCode{value: strconv.FormatInt(n.Int64()+CodeMin, 10)}, nil
}
