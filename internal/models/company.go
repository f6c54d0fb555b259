package models

// Company is the profile of the account owning organizations.
type Company struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CityID     int64  `json:"cityId"`
	DistrictID int64  `json:"districtId"`
	Address    string `json:"address"`
	About      string `json:"about"`
}
