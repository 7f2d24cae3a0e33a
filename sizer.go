package drip

// MaxUnits returns how many whole units can be bought with cash at price, commission included.
//
// The result n satisfies Cost(n) <= cash < Cost(n+1). Zero is a normal answer when cash
// cannot even pay for one unit and its commission.
func (s Schedule) MaxUnits(cash, price Money) Units {
	if !price.IsPositive() || cash.IsNegative() {
		return 0
	}
	// Cost(n) >= n*price, so hi is never affordable.
	hi := Units(cash.Ratio(price).IntPart()) + 1
	lo := Units(0)
	// invariant: Cost(lo) <= cash < Cost(hi)
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if s.Cost(mid, price).LessThanOrEqual(cash) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
