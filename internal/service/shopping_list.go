package service

import (
	"bufio"
	"fmt"
	"io"

	"foodgram/internal/model"
)

const ShoppingListFilename = "shopping_list.txt"

// WriteShoppingList 依給定順序每項輸出一行 "name (unit) - amount"
func WriteShoppingList(w io.Writer, items []model.ShoppingItem) error {
	bw := bufio.NewWriter(w)
	for _, it := range items {
		if _, err := fmt.Fprintf(bw, "%s (%s) - %d\n", it.Name, it.MeasurementUnit, it.Amount); err != nil {
			return err
		}
	}
	return bw.Flush()
}
