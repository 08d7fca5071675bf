package matcher

import "fmt"

// BuildPrompt renders the instruction sent to the language model.
func BuildPrompt(listText string, reducedCatalog []byte) string {
	return fmt.Sprintf(`You are a shopping assistant for the supermarket 'Real Preço'.
Read the customer's shopping list and find the matching products in the JSON catalogue below.
Return only products you are confident about and skip list items with no clear match.
For instance, "pão de forma" must not be matched to "Pão Francês" unless you are certain.
Ignore quantities and units: for "1kg de maçã" return the product "Maçã". Only report product IDs.

Customer shopping list:
%q

Product catalogue:
%s

Return the products that should be added to the cart.`, listText, reducedCatalog)
}
