package model

// CompanyRecord is one listed company. Code is always exactly four digits.
type CompanyRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Label renders the record the way pickers show it ("2330 - 台積電").
func (c CompanyRecord) Label() string {
	return c.Code + " - " + c.Name
}
