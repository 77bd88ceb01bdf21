package services

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// maxGenerateAttempts лимит попыток подбора свободного короткого кода.
const maxGenerateAttempts = 5

// CodeGenerator подбирает свободные короткие коды с проверкой на коллизии.
type CodeGenerator struct {
	links LinkRepository
}

func NewCodeGenerator(links LinkRepository) *CodeGenerator {
	return &CodeGenerator{links: links}
}

// GenerateUniqueCode генерирует случайный код заданной длины, свободный на
// момент проверки. После maxGenerateAttempts коллизий подряд возвращает
// ErrGenerationExhausted.
func (g *CodeGenerator) GenerateUniqueCode(ctx context.Context, length int) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := RandomString(length)
		if err != nil {
			return "", errors.Wrap(ErrUnknown, err.Error())
		}

		exists, existsErr := g.links.ExistsByShortCode(ctx, code)
		if existsErr != nil {
			return "", ErrUnknown
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

// RandomString возвращает криптографически случайную строку длины n.
// Годится для кодов и токенов, где предсказуемость недопустима.
func RandomString(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[num.Int64()]
	}
	return string(out), nil
}
