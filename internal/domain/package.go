package domain

import "time"

type FlightMode string

const (
	FlightModeOneWay    FlightMode = "one_way"
	FlightModeRoundTrip FlightMode = "round_trip"
	FlightModeMultiCity FlightMode = "multi_city"
)

type FlightClass string

const (
	FlightClassEconomy     FlightClass = "economy"
	FlightClassEconomyPlus FlightClass = "economy_plus"
	FlightClassBusiness    FlightClass = "business"
	FlightClassFirstClass  FlightClass = "first_class"
)

func (m FlightMode) Valid() bool {
	switch m {
	case FlightModeOneWay, FlightModeRoundTrip, FlightModeMultiCity:
		return true
	}
	return false
}

func (c FlightClass) Valid() bool {
	switch c {
	case FlightClassEconomy, FlightClassEconomyPlus, FlightClassBusiness, FlightClassFirstClass:
		return true
	}
	return false
}

type FlightPackage struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Destination   string      `json:"destination"`
	Origin        string      `json:"origin"`
	Price         float64     `json:"price"`
	Airline       string      `json:"airline"`
	FlightMode    FlightMode  `json:"flight_mode"`
	FlightClass   FlightClass `json:"flight_class"`
	DepartureDate time.Time   `json:"departure_date"`
	ReturnDate    *time.Time  `json:"return_date,omitempty"`
	DateCreated   time.Time   `json:"date_created"`
	DateUpdated   time.Time   `json:"date_updated"`
	IsHidden      bool        `json:"is_hidden"`
}

func (p FlightPackage) Archived() bool { return p.IsHidden }

// PackageSearch holds the supported search criteria. Text fields match as
// case-insensitive substrings, date fields match exactly.
type PackageSearch struct {
	Destination   string
	Origin        string
	Airline       string
	FlightMode    string
	FlightClass   string
	DepartureDate *time.Time
	ReturnDate    *time.Time
}

func (s PackageSearch) Empty() bool {
	return s.Destination == "" && s.Origin == "" && s.Airline == "" &&
		s.FlightMode == "" && s.FlightClass == "" &&
		s.DepartureDate == nil && s.ReturnDate == nil
}
