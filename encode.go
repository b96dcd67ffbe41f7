package coinfolio

// JSON encoding of the reports, with a stable field order.

func (p AssetPosition) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Set("symbol", p.Symbol)
	w.Set("deposited", p.Deposited.Decimal())
	w.Set("quantity", p.Quantity)
	w.Set("price", p.Price.Decimal())
	w.Set("value", p.Value.Decimal())
	w.Set("profit", p.Profit.Decimal())
	w.Set("gain", p.Gain)
	w.SetIf(p.NoCostBasis, "noCostBasis", true)
	w.SetIf(p.PriceMissing, "priceMissing", true)
	return w.MarshalJSON()
}

func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Set("deposited", t.Deposited.Decimal())
	w.Set("value", t.Value.Decimal())
	w.Set("profit", t.Profit.Decimal())
	w.Set("gain", t.Gain)
	w.SetIf(t.NoCostBasis, "noCostBasis", true)
	return w.MarshalJSON()
}

func (w Warning) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.Set("subject", w.Subject)
	o.Set("kind", w.Kind.String())
	o.Set("reason", w.Reason)
	return o.MarshalJSON()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Set("quote", s.Quote)
	positions := s.Positions
	if positions == nil {
		positions = []AssetPosition{}
	}
	w.Set("positions", positions)
	w.Set("total", s.Total)
	w.SetIf(len(s.Warnings) > 0, "warnings", s.Warnings)
	return w.MarshalJSON()
}
