package models

type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	Img      string  `json:"img"`
}
