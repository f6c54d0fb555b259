package models

// Organization is a venue or service listing owned by a company.
type Organization struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CityID      int64  `json:"cityId"`
	DistrictID  int64  `json:"districtId"`
	Address     string `json:"address"`
	Capacity    int    `json:"capacity"`
	Price       int64  `json:"price"`
	IsActive    bool   `json:"isActive"`
}
