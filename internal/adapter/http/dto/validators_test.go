package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyCodeRegex(t *testing.T) {
	assert.True(t, currencyCodeRe.MatchString("USD"))
	assert.True(t, currencyCodeRe.MatchString("EUR"))
	assert.False(t, currencyCodeRe.MatchString("usd"))
	assert.False(t, currencyCodeRe.MatchString("USDT"))
	assert.False(t, currencyCodeRe.MatchString(""))
}

func TestSwiftCodeRegex(t *testing.T) {
	assert.True(t, swiftCodeRe.MatchString("DEUTDEFF"))
	assert.True(t, swiftCodeRe.MatchString("DEUTDEFF500"))
	assert.False(t, swiftCodeRe.MatchString("DEUT"))
	assert.False(t, swiftCodeRe.MatchString("deutdeff"))
}
