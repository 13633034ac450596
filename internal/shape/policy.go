package shape

import (
	"errors"
	"fmt"
	"strings"
)

// Policy задаёт политику заполнения фигуры
type Policy uint8

const (
	PolicySolid   Policy = iota // объём вместе с поверхностью
	PolicyOutline               // только граница
	PolicyHollow                // очистка объёма, затем граница
)

// ErrUnknownPolicy возвращается ParsePolicy для неизвестных имён
var ErrUnknownPolicy = errors.New("unknown fill policy")

func (p Policy) String() string {
	switch p {
	case PolicySolid:
		return "solid"
	case PolicyOutline:
		return "outline"
	case PolicyHollow:
		return "hollow"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy разбирает имя политики. Пустая строка означает PolicySolid.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid", "fill":
		return PolicySolid, nil
	case "outline":
		return PolicyOutline, nil
	case "hollow":
		return PolicyHollow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
