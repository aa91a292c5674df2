package domain

import "time"

// Cart is the per-user collection of selected products awaiting checkout.
// There is at most one cart document per user; UserID is the lookup key.
type Cart struct {
	UserID    string     `bson:"usuarioId" json:"usuarioId"`
	Items     []CartItem `bson:"itens" json:"itens"`
	Total     float64    `bson:"total" json:"total"`
	UpdatedAt time.Time  `bson:"dataAtualizacao" json:"dataAtualizacao"`
	Version   int64      `bson:"versao" json:"-"`
}

// CartItem is one product line within a cart. UnitPrice and Name are snapshots
// taken when the product was first added; later catalog changes do not touch them.
type CartItem struct {
	ProductID string  `bson:"produtoId" json:"produtoId"`
	Quantity  int     `bson:"quantidade" json:"quantidade"`
	UnitPrice float64 `bson:"precoUnitario" json:"precoUnitario"`
	Name      string  `bson:"nome" json:"nome"`
}

// ComputeTotal returns the sum over all items of quantity * unit price.
func (c *Cart) ComputeTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// FindItemIndex returns the index of the cart item for the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
