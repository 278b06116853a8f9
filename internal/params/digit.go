package params

import (
	"fmt"
	"math"
)

// EditableDigits is the number of decimal positions the digit editor cycles through
const EditableDigits = 4

// DigitStep returns the Adjust delta that changes the given digit by one.
// Digit 0 is the most significant (thousands), digit 3 the least (ones).
func DigitStep(digit int) int {
	return int(math.Pow10(EditableDigits - 1 - digit))
}

// DigitOffset returns the column of the given digit inside Render(p).
//
// Integer values are right aligned in a fixed field, so digit d always sits at the
// same column. Float values are edited in thousandths, so digit 0 maps onto the
// ones place and digits 1..3 onto the decimals; the decimal point is skipped and
// Magnitude locates the ones place when the integer part widens the field.
func DigitOffset(p Parameter, digit int) (int, error) {
	if digit < 0 || digit >= EditableDigits {
		return 0, fmt.Errorf("digit %d out of range [0,%d)", digit, EditableDigits)
	}

	valueColumn := LabelWidth + 1
	switch p.Kind() {
	case KindFloat:
		// leading sign column, then the integer part
		ones := 1 + p.Magnitude()
		if digit == 0 {
			return valueColumn + ones, nil
		}
		return valueColumn + ones + 1 + digit, nil
	default:
		return valueColumn + integerWidth - EditableDigits + digit, nil
	}
}
