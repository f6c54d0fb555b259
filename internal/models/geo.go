package models

// City is a top-level region a company or organization belongs to.
type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// District is a sub-region of a City. CityID references the parent.
type District struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	CityID int64  `json:"cityId"`
}
