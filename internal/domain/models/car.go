package models

type Car struct {
	ID               int64
	Make             string
	Model            string
	Year             int
	PricePerDayCents int64
	Available        bool
	ImageURL         string
	LicensePlate     string
	Color            string
	Transmission     string
	Seats            int
	FuelType         string
}

// CarFilter holds optional search criteria; zero values mean "no filter".
type CarFilter struct {
	Make          string
	Model         string
	MinPriceCents int64
	MaxPriceCents int64
	Available     *bool
}
