package aiclient

import "fmt"

const promptTemplate = `Analyze these products and identify interesting deals:
%s
Focus on:
1. Significant price drops (>50%%)
2. Popular or trending items
3. Good value for money
Provide a summary of the best deals.`

func buildPrompt(products []byte) string {
	return fmt.Sprintf(promptTemplate, products)
}
