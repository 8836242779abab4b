// internal/ai/prompt.go
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arisathang/Stock-management/internal/domain"
)

func quantityPrompt(item domain.Item, history []domain.ConsumptionDay) string {
	var b strings.Builder

	b.WriteString("You are an expert inventory manager for a restaurant.\n")
	b.WriteString("Analyze the following data for a product and determine how much of it we need to order.\n\n")
	b.WriteString("Product Details:\n")
	fmt.Fprintf(&b, "- Name: %s (%s)\n", item.Name, item.Unit)
	fmt.Fprintf(&b, "- Current Stock: %d\n", item.RemainingStock)
	fmt.Fprintf(&b, "- Minimum Stock Threshold: %d\n", item.MinStock)
	fmt.Fprintf(&b, "- Maximum Stock Threshold: %d\n\n", item.MaxStock)

	b.WriteString("Recent Consumption History (last 90 days):\n")
	if len(history) == 0 {
		b.WriteString("  - No recent consumption data.\n")
	}
	for _, day := range history {
		fmt.Fprintf(&b, "  - %s: Used %d units\n", day.Date.Format("2006-01-02"), day.Quantity)
	}

	b.WriteString("\nTask:\n")
	b.WriteString("Based on the data, calculate the ideal quantity to order. ")
	b.WriteString("The goal is to replenish the stock to a healthy level without exceeding the maximum threshold.\n\n")
	b.WriteString("Consider the consumption trend. If usage is high, ordering up to the maximum is wise. ")
	b.WriteString("If usage is low, a smaller order to just get above the minimum is better.\n\n")
	b.WriteString("Return ONLY a single integer number representing the recommended order amount. ")
	b.WriteString("Do not add any other text or explanation.")

	return b.String()
}

func allocationPrompt(lines []domain.OrderLine, catalog map[string][]domain.VendorOffer) string {
	var b strings.Builder

	b.WriteString("You are an expert procurement officer for a restaurant. ")
	b.WriteString("Your task is to create the most cost-effective purchase plan.\n\n")

	b.WriteString("Here are the items we need to order:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s: %d %s (product_id: %s)\n", line.Name, line.OrderAmount, line.Unit, line.ItemID)
	}

	b.WriteString("\nHere is the pricing information from our available vendors. ")
	b.WriteString("'bundles' shows the discount price for a certain quantity.\n")
	pricing, _ := json.MarshalIndent(catalog, "", "  ")
	b.Write(pricing)

	b.WriteString("\n\nTask:\n")
	b.WriteString("Determine the best vendor to purchase each item from to minimize the TOTAL cost. ")
	b.WriteString("Your calculation must include shipping costs.\n")
	b.WriteString("Remember that shipping is free if the subtotal for a single vendor meets their 'free_shipping_threshold'.\n")
	b.WriteString("Sometimes it is cheaper to buy from a slightly more expensive vendor if that helps you reach ")
	b.WriteString("the free shipping threshold and avoid a shipping fee.\n\n")

	b.WriteString("Return your answer as a JSON object with the vendor ID as the key. ")
	b.WriteString("Each value should be an object containing a list of `items` to order from that vendor.\n\n")
	b.WriteString("Example Response Format:\n")
	b.WriteString(`{
  "vendor1": {
    "items": [
      {"product_id": "item1", "quantity": 50},
      {"product_id": "item7", "quantity": 60}
    ]
  },
  "vendor3": {
    "items": [
      {"product_id": "item3", "quantity": 25}
    ]
  }
}`)
	b.WriteString("\n\nProvide ONLY the JSON response. Do not include any other text, explanations, or formatting like ```json.")

	return b.String()
}
