package domain

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// PasswordPolicy describes the accepted shape of a plaintext password.
type PasswordPolicy struct {
	MinLength      int  `mapstructure:"min_length"`
	RequireUpper   bool `mapstructure:"require_upper"`
	RequireLower   bool `mapstructure:"require_lower"`
	RequireDigit   bool `mapstructure:"require_digit"`
	RequireSpecial bool `mapstructure:"require_special"`
}

var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireDigit:   true,
	RequireSpecial: true,
}

// Pattern compiles the policy into a single lookahead expression.
func (p PasswordPolicy) Pattern() string {
	var b strings.Builder
	b.WriteString("^")
	if p.RequireUpper {
		b.WriteString(`(?=.*[A-Z])`)
	}
	if p.RequireLower {
		b.WriteString(`(?=.*[a-z])`)
	}
	if p.RequireDigit {
		b.WriteString(`(?=.*\d)`)
	}
	if p.RequireSpecial {
		b.WriteString(`(?=.*[^A-Za-z0-9])`)
	}
	min := p.MinLength
	if min < 1 {
		min = 1
	}
	fmt.Fprintf(&b, ".{%d,}$", min)

	return b.String()
}

func (p PasswordPolicy) Describe() string {
	reqs := make([]string, 0, 4)
	if p.RequireUpper {
		reqs = append(reqs, "an uppercase letter")
	}
	if p.RequireLower {
		reqs = append(reqs, "a lowercase letter")
	}
	if p.RequireDigit {
		reqs = append(reqs, "a digit")
	}
	if p.RequireSpecial {
		reqs = append(reqs, "a special character")
	}

	msg := fmt.Sprintf("must be at least %d characters", p.MinLength)
	if len(reqs) > 0 {
		msg += " and contain " + strings.Join(reqs, ", ")
	}

	return msg
}

// Check returns a ValidationError on the "password" field when pw does not
// satisfy the policy.
func (p PasswordPolicy) Check(pw string) error {
	re, err := regexp2.Compile(p.Pattern(), regexp2.None)
	if err != nil {
		return fmt.Errorf("regexp2.Compile -> %w", err)
	}

	ok, err := re.MatchString(pw)
	if err != nil {
		return fmt.Errorf("re.MatchString -> %w", err)
	}
	if !ok {
		return NewValidationError("password", p.Describe())
	}

	return nil
}
