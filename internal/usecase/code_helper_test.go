package usecase

import (
	"regexp"
	"testing"
)

func TestGenerateActivationCode(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^[A-Z0-9]{10}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		code := generateActivationCode()
		if !re.MatchString(code) {
			t.Fatalf("code %q does not match ^[A-Z0-9]{10}$", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = struct{}{}
	}
}
