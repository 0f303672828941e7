package content

// TokenRateUSD is the simulated blended price per token.
const TokenRateUSD = 0.000015

// EstimateTokens approximates the token count of a text at roughly four
// characters per token, rounding up. Explicitly approximate — used for
// metering display, never for billing.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// Cost converts a token count to the simulated USD cost.
func Cost(tokens int) float64 {
	return float64(tokens) * TokenRateUSD
}
