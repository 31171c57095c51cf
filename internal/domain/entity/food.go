package entity

// Food is a single row of the read-only food catalog.
type Food struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Image    string `json:"image"`
}
