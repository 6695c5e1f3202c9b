package payments

// Method identifies how a traveler pays for a booking
type Method string

const (
	MethodCard      Method = "card"
	MethodLynk      Method = "lynk"
	MethodWiPay     Method = "wipay"
	MethodApplePay  Method = "applepay"
	MethodGooglePay Method = "googlepay"
	MethodCash      Method = "cash"
)

// AllMethods lists every supported payment method in display order
func AllMethods() []Method {
	return []Method{MethodCard, MethodLynk, MethodWiPay, MethodApplePay, MethodGooglePay, MethodCash}
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodLynk, MethodWiPay, MethodApplePay, MethodGooglePay, MethodCash:
		return true
	}
	return false
}

// IsChargedOnline reports whether the method is charged before the tour
// and therefore passes through the payment-detail step. Only cash skips
// it and settles on arrival.
func (m Method) IsChargedOnline() bool {
	return m != MethodCash
}

// RequiresCardDetails reports whether the method needs card entry on our
// side. Wallet methods collect credentials with the provider.
func (m Method) RequiresCardDetails() bool {
	return m == MethodCard
}

// IsPayOnArrival reports whether no upfront charge happens for the method
func (m Method) IsPayOnArrival() bool {
	return m == MethodCash
}
