// Package numeral spells small integers the way they are read aloud in Mandarin.
package numeral

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("numeral: value out of range")

var digits = [...]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

const ten = "十"

// Chinese converts n (1..99) into its numeral text, e.g. 12 -> 十二, 20 -> 二十.
func Chinese(n int) (string, error) {
	switch {
	case n < 1 || n > 99:
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, n)
	case n < 10:
		return digits[n], nil
	case n == 10:
		return ten, nil
	case n < 20:
		return ten + digits[n%10], nil
	}

	tens, ones := n/10, n%10
	if ones == 0 {
		return digits[tens] + ten, nil
	}
	return digits[tens] + ten + digits[ones], nil
}

// Count is Chinese followed by the generic measure word, e.g. 18 -> 十八個.
func Count(n int) (string, error) {
	s, err := Chinese(n)
	if err != nil {
		return "", err
	}
	return s + "個", nil
}
