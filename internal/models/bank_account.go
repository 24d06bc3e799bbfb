package models

// BankAccount is the account snapshot embedded in a bank-account token.
type BankAccount struct {
	AccountHolderName string
	AccountHolderType string
	BankName          string
	Country           string
	Currency          string
	Fingerprint       string
	Last4             string
	RoutingNumber     string
}

func bankAccountFromMap(m map[string]interface{}) BankAccount {
	return BankAccount{
		AccountHolderName: optString(m, "account_holder_name"),
		AccountHolderType: optString(m, "account_holder_type"),
		BankName:          optString(m, "bank_name"),
		Country:           optString(m, "country"),
		Currency:          optString(m, "currency"),
		Fingerprint:       optString(m, "fingerprint"),
		Last4:             optString(m, "last4"),
		RoutingNumber:     optString(m, "routing_number"),
	}
}
