package models

type IPInfo struct {
	IP     string `json:"ip"`
	City   string `json:"city"`
	Region string `json:"region"`
	Postal string `json:"postal"`
}

type AdministrativeArea struct {
	ID string `json:"ID"`
}

// Location is a place as resolved by the weather service. Key must be set
// before current conditions can be requested for it.
type Location struct {
	Key                string             `json:"Key"`
	EnglishName        string             `json:"EnglishName"`
	AdministrativeArea AdministrativeArea `json:"AdministrativeArea"`
	PrimaryPostalCode  string             `json:"PrimaryPostalCode"`

	Code    string `json:"Code,omitempty"`
	Message string `json:"Message,omitempty"`
}
