package rec

// Test models shared across the package tests. They describe a small sales
// order shape: a body with value, text, and numeric bindings, a nested
// address subrecord, and one repeating item sublist.

type testAddress struct {
	BaseRecord `rec:"type:address"`
	City       string `rec:"city"`
	Country    string `rec:"country"`
}

type testOrderLine struct {
	BaseLine
	Item     string  `rec:"item"`
	ItemText string  `rec:"itemText"`
	Quantity float64 `rec:"quantity"`
	Rate     float64 `rec:"rate"`
}

type testOrder struct {
	BaseRecord `rec:"type:salesorder"`
	Entity     string          `rec:"entity"`
	EntityText string          `rec:"entityText"`
	Memo       string          `rec:"memo"`
	Total      float64         `rec:"total"`
	ShipTo     *testAddress    `rec:"shipaddress,subrecord"`
	Items      []testOrderLine `rec:"item,sublist"`
}
